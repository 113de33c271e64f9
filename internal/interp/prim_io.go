package interp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/go-joy/internal/ast"
	"github.com/cwbudde/go-joy/internal/errors"
	"github.com/cwbudde/go-joy/internal/lexer"
	"github.com/cwbudde/go-joy/internal/parser"
)

// rwNopCloser adapts the evaluator's already-open stdio streams to the
// io.ReadWriteCloser a FileHandle expects, without letting fclose on
// stdin/stdout/stderr actually close them.
type rwNopCloser struct {
	io.Reader
	io.Writer
}

func (rwNopCloser) Close() error { return nil }

func newFile(name string, rw io.ReadWriteCloser) ast.Value {
	return ast.Value{Kind: ast.File, Fh: &ast.FileHandle{Name: name, Handle: rw, Reader: bufio.NewReader(rw)}}
}

func nullFile(name string) ast.Value {
	return ast.Value{Kind: ast.File, Fh: &ast.FileHandle{Name: name, IsNull: true}}
}

func (ev *Evaluator) popFile(op string) (ast.Value, error) {
	v, ok := ev.Stack.Pop()
	if !ok {
		return ast.Value{}, ev.Underflow(op, 1)
	}
	if v.Kind != ast.File {
		ev.Stack.Push(v)
		return ast.Value{}, ev.TypeError(op, []string{"file"}, v.Kind)
	}
	return v, nil
}

func registerIOPrimitives(r *PrimitiveRegistry) {
	reg := func(name string, arity int, sig string, fn PrimFunc) {
		r.Register(&Primitive{Name: name, Arity: arity, Signature: sig, Fn: fn})
	}

	// --- standard streams ---

	reg("stdin", 0, " -> File", func(ev *Evaluator) error {
		ev.Stack.Push(newFile("<stdin>", rwNopCloser{Reader: ev.In, Writer: io.Discard}))
		return nil
	})
	reg("stdout", 0, " -> File", func(ev *Evaluator) error {
		ev.Stack.Push(newFile("<stdout>", rwNopCloser{Reader: strings.NewReader(""), Writer: ev.Out}))
		return nil
	})
	reg("stderr", 0, " -> File", func(ev *Evaluator) error {
		ev.Stack.Push(newFile("<stderr>", rwNopCloser{Reader: strings.NewReader(""), Writer: os.Stderr}))
		return nil
	})

	// --- file handle primitives ---

	reg("fopen", 2, "Name Mode -> File", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		mode, name := vs[0], vs[1]
		if name.Kind != ast.String || mode.Kind != ast.String {
			return restoreTypeErr(ev, "fopen", []string{"string"}, name, vs)
		}
		var flag int
		switch mode.Str {
		case "w":
			flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		case "a":
			flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		default:
			flag = os.O_RDONLY
		}
		f, err := os.OpenFile(name.Str, flag, 0o644)
		if err != nil {
			ev.Stack.Push(nullFile(name.Str))
			return nil
		}
		ev.Stack.Push(newFile(name.Str, f))
		return nil
	})
	reg("fclose", 1, "File -> ", func(ev *Evaluator) error {
		v, err := ev.popFile("fclose")
		if err != nil {
			return err
		}
		if !v.Fh.IsNull && v.Fh.Handle != nil {
			v.Fh.Handle.Close()
		}
		return nil
	})
	reg("fflush", 1, "File -> File", func(ev *Evaluator) error {
		v, err := ev.popFile("fflush")
		if err != nil {
			return err
		}
		if f, ok := v.Fh.Handle.(interface{ Flush() error }); ok {
			f.Flush()
		}
		ev.Stack.Push(v)
		return nil
	})
	reg("feof", 1, "File -> File B", func(ev *Evaluator) error {
		v, err := ev.popFile("feof")
		if err != nil {
			return err
		}
		ev.Stack.Push(v)
		ev.Stack.Push(ast.Bln(v.Fh.AtEOF))
		return nil
	})
	reg("ferror", 1, "File -> File B", func(ev *Evaluator) error {
		v, err := ev.popFile("ferror")
		if err != nil {
			return err
		}
		ev.Stack.Push(v)
		ev.Stack.Push(ast.Bln(v.Fh.LastErr != nil))
		return nil
	})
	reg("ftell", 1, "File -> File I", func(ev *Evaluator) error {
		v, err := ev.popFile("ftell")
		if err != nil {
			return err
		}
		ev.Stack.Push(v)
		if s, ok := v.Fh.Handle.(io.Seeker); ok {
			if off, err := s.Seek(0, io.SeekCurrent); err == nil {
				ev.Stack.Push(ast.Int(off))
				return nil
			}
		}
		ev.Stack.Push(ast.Int(-1))
		return nil
	})
	reg("fseek", 3, "File Position Whence -> File B", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(3)
		whence, pos, file := vs[0], vs[1], vs[2]
		if file.Kind != ast.File || pos.Kind != ast.Integer || whence.Kind != ast.Integer {
			return restoreTypeErr(ev, "fseek", []string{"file"}, file, vs)
		}
		ev.Stack.Push(file)
		s, ok := file.Fh.Handle.(io.Seeker)
		if !ok {
			ev.Stack.Push(ast.Bln(true))
			return nil
		}
		w := int(whence.Int)
		if w < 0 || w > 2 {
			w = 0
		}
		_, serr := s.Seek(pos.Int, w)
		ev.Stack.Push(ast.Bln(serr != nil))
		return nil
	})
	reg("fgetch", 1, "File -> File I", func(ev *Evaluator) error {
		v, err := ev.popFile("fgetch")
		if err != nil {
			return err
		}
		ev.Stack.Push(v)
		if v.Fh.IsNull {
			v.Fh.AtEOF = true
			ev.Stack.Push(ast.Int(-1))
			return nil
		}
		rn, _, rerr := v.Fh.Reader.ReadRune()
		if rerr != nil {
			if rerr == io.EOF {
				v.Fh.AtEOF = true
			} else {
				v.Fh.LastErr = rerr
			}
			ev.Stack.Push(ast.Int(-1))
			return nil
		}
		ev.Stack.Push(ast.Int(int64(rn)))
		return nil
	})
	reg("fread", 1, "File -> File I", func(ev *Evaluator) error {
		v, err := ev.popFile("fread")
		if err != nil {
			return err
		}
		ev.Stack.Push(v)
		if v.Fh.IsNull {
			v.Fh.AtEOF = true
			ev.Stack.Push(ast.Int(-1))
			return nil
		}
		b, berr := v.Fh.Reader.ReadByte()
		if berr != nil {
			if berr == io.EOF {
				v.Fh.AtEOF = true
			} else {
				v.Fh.LastErr = berr
			}
			ev.Stack.Push(ast.Int(-1))
			return nil
		}
		ev.Stack.Push(ast.Int(int64(b)))
		return nil
	})
	reg("fputch", 2, "File Ch -> File", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		ch, file := vs[0], vs[1]
		if file.Kind != ast.File || ch.Kind != ast.Char {
			return restoreTypeErr(ev, "fputch", []string{"file"}, file, vs)
		}
		ev.Stack.Push(file)
		if !file.Fh.IsNull {
			io.WriteString(file.Fh.Handle, string(ch.Ch))
		}
		return nil
	})
	reg("fwrite", 2, "File I -> File", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		b, file := vs[0], vs[1]
		if file.Kind != ast.File || b.Kind != ast.Integer {
			return restoreTypeErr(ev, "fwrite", []string{"file"}, file, vs)
		}
		ev.Stack.Push(file)
		if !file.Fh.IsNull {
			file.Fh.Handle.Write([]byte{byte(b.Int)})
		}
		return nil
	})
	reg("fgets", 1, "File -> File S", func(ev *Evaluator) error {
		v, err := ev.popFile("fgets")
		if err != nil {
			return err
		}
		ev.Stack.Push(v)
		if v.Fh.IsNull {
			v.Fh.AtEOF = true
			ev.Stack.Push(ast.Str(""))
			return nil
		}
		line, lerr := v.Fh.Reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if lerr != nil {
			if lerr == io.EOF {
				v.Fh.AtEOF = true
			} else {
				v.Fh.LastErr = lerr
			}
		}
		ev.Stack.Push(ast.Str(line))
		return nil
	})
	fputStr := func(name string) PrimFunc {
		return func(ev *Evaluator) error {
			vs, _ := ev.Stack.PopN(2)
			s, file := vs[0], vs[1]
			if file.Kind != ast.File || s.Kind != ast.String {
				return restoreTypeErr(ev, name, []string{"file"}, file, vs)
			}
			ev.Stack.Push(file)
			if !file.Fh.IsNull {
				io.WriteString(file.Fh.Handle, s.Str)
			}
			return nil
		}
	}
	reg("fputchars", 2, "File S -> File", fputStr("fputchars"))
	reg("fputstring", 2, "File S -> File", fputStr("fputstring"))
	reg("fput", 2, "File X -> File", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		x, file := vs[0], vs[1]
		if file.Kind != ast.File {
			return restoreTypeErr(ev, "fput", []string{"file"}, file, vs)
		}
		ev.Stack.Push(file)
		if !file.Fh.IsNull {
			io.WriteString(file.Fh.Handle, x.String())
		}
		return nil
	})

	// --- input on the default input stream ---

	reg("getch", 0, " -> I", func(ev *Evaluator) error {
		rn, _, rerr := ev.In.ReadRune()
		if rerr != nil {
			ev.Stack.Push(ast.Int(-1))
			return nil
		}
		ev.Stack.Push(ast.Int(int64(rn)))
		return nil
	})
	reg("getline", 0, " -> S", func(ev *Evaluator) error {
		line, _ := ev.In.ReadString('\n')
		ev.Stack.Push(ast.Str(strings.TrimRight(line, "\r\n")))
		return nil
	})
	reg("get", 0, " -> X", func(ev *Evaluator) error {
		line, lerr := ev.In.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" && lerr != nil {
			ev.Stack.Push(ast.Lst(nil))
			return nil
		}
		lx := lexer.New(line)
		p := parser.New(lx, line, "<get>")
		terms, perr := p.Parse()
		if perr != nil || len(terms) == 0 {
			ev.Stack.Push(ast.Str(line))
			return nil
		}
		ev.Stack.Push(terms[0].Val)
		return nil
	})

	// --- output on the default output stream ---

	reg(".", 1, "X -> ", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		fmt.Fprintln(ev.Out, v.String())
		return nil
	})
	reg("put", 1, "X -> ", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		fmt.Fprint(ev.Out, v.String())
		return nil
	})
	reg("putln", 1, "X -> ", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		fmt.Fprintln(ev.Out, v.String())
		return nil
	})
	reg("putch", 1, "Ch -> ", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.Char {
			ev.Stack.Push(v)
			return ev.TypeError("putch", []string{"char"}, v.Kind)
		}
		fmt.Fprint(ev.Out, string(v.Ch))
		return nil
	})
	reg("putchars", 1, "S -> ", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.String {
			ev.Stack.Push(v)
			return ev.TypeError("putchars", []string{"string"}, v.Kind)
		}
		fmt.Fprint(ev.Out, v.Str)
		return nil
	})
	reg("newline", 0, " -> ", func(ev *Evaluator) error {
		fmt.Fprintln(ev.Out)
		return nil
	})

	// --- path primitives ---

	reg("fremove", 1, "Name -> B", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.String {
			ev.Stack.Push(v)
			return ev.TypeError("fremove", []string{"string"}, v.Kind)
		}
		ev.Stack.Push(ast.Bln(os.Remove(v.Str) == nil))
		return nil
	})
	reg("frename", 2, "Old New -> B", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		newName, old := vs[0], vs[1]
		if old.Kind != ast.String || newName.Kind != ast.String {
			return restoreTypeErr(ev, "frename", []string{"string"}, old, vs)
		}
		ev.Stack.Push(ast.Bln(os.Rename(old.Str, newName.Str) == nil))
		return nil
	})
	reg("filetime", 1, "Name -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.String {
			ev.Stack.Push(v)
			return ev.TypeError("filetime", []string{"string"}, v.Kind)
		}
		fi, ferr := os.Stat(v.Str)
		if ferr != nil {
			ev.Stack.Push(ast.Int(0))
			return nil
		}
		ev.Stack.Push(ast.Int(fi.ModTime().Unix()))
		return nil
	})
	reg("finclude", 1, "Name -> ...", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.String {
			ev.Stack.Push(v)
			return ev.TypeError("finclude", []string{"string"}, v.Kind)
		}
		path, rerr := ev.Include.Resolve(v.Str)
		if rerr != nil {
			return errors.NewIncludeError(ev.pos, v.Str, []string{v.Str}, ev.Source, ev.File)
		}
		if ev.Include.Seen(path) {
			return nil
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return errors.NewIncludeError(ev.pos, v.Str, []string{path}, ev.Source, ev.File)
		}
		lx := lexer.New(string(data))
		p := parser.New(lx, string(data), path)
		terms, perr := p.Parse()
		if perr != nil {
			return perr
		}
		return ev.Execute(terms)
	})

	// --- system/time ---

	reg("time", 0, " -> I", func(ev *Evaluator) error {
		ev.Stack.Push(ast.Int(time.Now().Unix()))
		return nil
	})
	reg("clock", 0, " -> F", func(ev *Evaluator) error {
		ev.Stack.Push(ast.Flo(time.Since(ev.Started).Seconds()))
		return nil
	})
	reg("localtime", 1, "I -> L", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.Integer {
			ev.Stack.Push(v)
			return ev.TypeError("localtime", []string{"integer"}, v.Kind)
		}
		ev.Stack.Push(ast.Lst(timeToBreakdown(time.Unix(v.Int, 0).Local())))
		return nil
	})
	reg("gmtime", 1, "I -> L", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.Integer {
			ev.Stack.Push(v)
			return ev.TypeError("gmtime", []string{"integer"}, v.Kind)
		}
		ev.Stack.Push(ast.Lst(timeToBreakdown(time.Unix(v.Int, 0).UTC())))
		return nil
	})
	reg("mktime", 1, "L -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if !isAggregateKind(v) {
			ev.Stack.Push(v)
			return ev.TypeError("mktime", []string{"list"}, v.Kind)
		}
		t, ok := breakdownToTime(items(v))
		if !ok {
			ev.Stack.Push(ast.Int(-1))
			return nil
		}
		ev.Stack.Push(ast.Int(t.Unix()))
		return nil
	})
	reg("strftime", 2, "L Fmt -> S", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		format, l := vs[0], vs[1]
		if format.Kind != ast.String || !isAggregateKind(l) {
			return restoreTypeErr(ev, "strftime", []string{"string"}, format, vs)
		}
		t, ok := breakdownToTime(items(l))
		if !ok {
			ev.Stack.Push(ast.Str(""))
			return nil
		}
		ev.Stack.Push(ast.Str(strftime(t, format.Str)))
		return nil
	})
	reg("getenv", 1, "S -> S", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.String {
			ev.Stack.Push(v)
			return ev.TypeError("getenv", []string{"string"}, v.Kind)
		}
		ev.Stack.Push(ast.Str(os.Getenv(v.Str)))
		return nil
	})
	reg("system", 1, "S -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.String {
			ev.Stack.Push(v)
			return ev.TypeError("system", []string{"string"}, v.Kind)
		}
		cmd := exec.Command("sh", "-c", v.Str)
		cmd.Stdout = ev.Out
		cmd.Stderr = os.Stderr
		code := 0
		if rerr := cmd.Run(); rerr != nil {
			if exitErr, ok := rerr.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			} else {
				code = -1
			}
		}
		ev.Stack.Push(ast.Int(int64(code)))
		return nil
	})
	reg("argc", 0, " -> I", func(ev *Evaluator) error {
		ev.Stack.Push(ast.Int(int64(len(ev.Argv))))
		return nil
	})
	reg("argv", 0, " -> L", func(ev *Evaluator) error {
		out := make([]ast.Value, len(ev.Argv))
		for i, a := range ev.Argv {
			out[i] = ast.Str(a)
		}
		ev.Stack.Push(ast.Lst(out))
		return nil
	})
	reg("abort", 0, " -> ", func(ev *Evaluator) error {
		return &errors.Exit{Code: 1}
	})
	reg("quit", 1, "I -> ", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		code := 0
		if v.Kind == ast.Integer {
			code = int(v.Int)
		}
		return &errors.Exit{Code: code}
	})
	reg("gc", 0, " -> ", func(ev *Evaluator) error { return nil })

	// --- formatting ---

	reg("format", 4, "N C I J -> S", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4)
		j, i, c, n := vs[0], vs[1], vs[2], vs[3]
		if c.Kind != ast.Char {
			return restoreTypeErr(ev, "format", []string{"char"}, c, vs)
		}
		ev.Stack.Push(ast.Str(formatValue(n, c.Ch, intArg(i), intArg(j))))
		return nil
	})
	reg("formatf", 4, "F C I J -> S", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(4)
		j, i, c, f := vs[0], vs[1], vs[2], vs[3]
		if c.Kind != ast.Char {
			return restoreTypeErr(ev, "formatf", []string{"char"}, c, vs)
		}
		ev.Stack.Push(ast.Str(formatValue(f, c.Ch, intArg(i), intArg(j))))
		return nil
	})

	// --- string/number conversions ---

	reg("strtol", 2, "S I -> I", func(ev *Evaluator) error {
		vs, _ := ev.Stack.PopN(2)
		base, s := vs[0], vs[1]
		if s.Kind != ast.String || base.Kind != ast.Integer {
			return restoreTypeErr(ev, "strtol", []string{"string"}, s, vs)
		}
		n, nerr := strconv.ParseInt(strings.TrimSpace(s.Str), int(base.Int), 64)
		if nerr != nil {
			n = 0
		}
		ev.Stack.Push(ast.Int(n))
		return nil
	})
	reg("strtod", 1, "S -> F", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.String {
			ev.Stack.Push(v)
			return ev.TypeError("strtod", []string{"string"}, v.Kind)
		}
		f, ferr := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if ferr != nil {
			f = 0
		}
		ev.Stack.Push(ast.Flo(f))
		return nil
	})
	reg("intern", 1, "S -> Sym", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.String {
			ev.Stack.Push(v)
			return ev.TypeError("intern", []string{"string"}, v.Kind)
		}
		ev.Stack.Push(ast.Sym(v.Str))
		return nil
	})
	reg("name", 1, "Sym -> S", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.Symbol {
			ev.Stack.Push(v)
			return ev.TypeError("name", []string{"symbol"}, v.Kind)
		}
		ev.Stack.Push(ast.Str(v.Str))
		return nil
	})

	// --- character conversions ---

	reg("chr", 1, "I -> Ch", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.Integer {
			ev.Stack.Push(v)
			return ev.TypeError("chr", []string{"integer"}, v.Kind)
		}
		ev.Stack.Push(ast.Chr(rune(v.Int)))
		return nil
	})
	reg("ord", 1, "Ch -> I", func(ev *Evaluator) error {
		v, _ := ev.Stack.Pop()
		if v.Kind != ast.Char {
			ev.Stack.Push(v)
			return ev.TypeError("ord", []string{"char"}, v.Kind)
		}
		ev.Stack.Push(ast.Int(int64(v.Ch)))
		return nil
	})
}

func intArg(v ast.Value) int {
	if v.Kind == ast.Integer {
		return int(v.Int)
	}
	return 0
}

// formatValue implements the format/formatf mode-character table
// (d f e g o x X c s), applying width I and precision/decimals J.
func formatValue(v ast.Value, mode rune, width, prec int) string {
	var body string
	switch mode {
	case 'd':
		body = strconv.FormatInt(numAsInt(v), 10)
	case 'o':
		body = strconv.FormatInt(numAsInt(v), 8)
	case 'x':
		body = strconv.FormatInt(numAsInt(v), 16)
	case 'X':
		body = strings.ToUpper(strconv.FormatInt(numAsInt(v), 16))
	case 'f':
		p := prec
		if p <= 0 {
			p = 6
		}
		body = strconv.FormatFloat(numAsFloat(v), 'f', p, 64)
	case 'e':
		p := prec
		if p <= 0 {
			p = 6
		}
		body = strconv.FormatFloat(numAsFloat(v), 'e', p, 64)
	case 'g':
		p := -1
		if prec > 0 {
			p = prec
		}
		body = strconv.FormatFloat(numAsFloat(v), 'g', p, 64)
	case 'c':
		if v.Kind == ast.Char {
			body = string(v.Ch)
		} else {
			body = string(rune(numAsInt(v)))
		}
	default: // 's' and anything unrecognized: printed representation
		if v.Kind == ast.String {
			body = v.Str
		} else {
			body = v.String()
		}
	}
	if width > len(body) {
		body = strings.Repeat(" ", width-len(body)) + body
	}
	return body
}

func numAsInt(v ast.Value) int64 {
	switch v.Kind {
	case ast.Integer:
		return v.Int
	case ast.Float:
		return int64(v.Flt)
	case ast.Char:
		return int64(v.Ch)
	case ast.Boolean:
		if v.Bool {
			return 1
		}
		return 0
	}
	return 0
}

func numAsFloat(v ast.Value) float64 {
	if v.Kind == ast.Float {
		return v.Flt
	}
	return float64(numAsInt(v))
}

// timeToBreakdown and breakdownToTime share an 8-field layout (Year
// Month Day Hour Min Sec WDay YDay), a plainer pairing than the C tm
// struct's 1900-based year and 0-based month since nothing besides
// these two primitives consumes it.
func timeToBreakdown(t time.Time) []ast.Value {
	return []ast.Value{
		ast.Int(int64(t.Year())),
		ast.Int(int64(t.Month())),
		ast.Int(int64(t.Day())),
		ast.Int(int64(t.Hour())),
		ast.Int(int64(t.Minute())),
		ast.Int(int64(t.Second())),
		ast.Int(int64(t.Weekday())),
		ast.Int(int64(t.YearDay())),
	}
}

func breakdownToTime(elems []ast.Value) (time.Time, bool) {
	if len(elems) < 6 {
		return time.Time{}, false
	}
	get := func(i int) int {
		if elems[i].Kind == ast.Integer {
			return int(elems[i].Int)
		}
		return 0
	}
	return time.Date(get(0), time.Month(get(1)), get(2), get(3), get(4), get(5), 0, time.UTC), true
}

func strftime(t time.Time, format string) string {
	var sb strings.Builder
	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 >= len(runes) {
			sb.WriteRune(runes[i])
			continue
		}
		i++
		switch runes[i] {
		case 'Y':
			fmt.Fprintf(&sb, "%04d", t.Year())
		case 'y':
			fmt.Fprintf(&sb, "%02d", t.Year()%100)
		case 'm':
			fmt.Fprintf(&sb, "%02d", int(t.Month()))
		case 'd':
			fmt.Fprintf(&sb, "%02d", t.Day())
		case 'H':
			fmt.Fprintf(&sb, "%02d", t.Hour())
		case 'M':
			fmt.Fprintf(&sb, "%02d", t.Minute())
		case 'S':
			fmt.Fprintf(&sb, "%02d", t.Second())
		case '%':
			sb.WriteByte('%')
		default:
			sb.WriteByte('%')
			sb.WriteRune(runes[i])
		}
	}
	return sb.String()
}
