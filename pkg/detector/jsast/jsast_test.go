package jsast

import "testing"

func TestConfirmEval(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"direct call", `eval("2+2")`, true},
		{"window dot call", `window.eval(code)`, true},
		{"new Function", `var f = new Function("return 1");`, true},
		{"inside string literal", `var s = "eval(x)";`, false},
		{"inside comment", `// eval(x)`, false},
		{"inside template literal", "var s = `eval(x)`;", false},
		{"unrelated call", `evaluate(x)`, false},
		{"unparseable fragment keeps finding", `foo(eval(`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConfirmEval(tc.line); got != tc.want {
				t.Errorf("ConfirmEval(%q) = %v, want %v", tc.line, got, tc.want)
			}
		})
	}
}

func TestConfirmStringTimer(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"string timeout", `setTimeout("doStuff()", 100)`, true},
		{"string interval", `setInterval('tick()', 50)`, true},
		{"template literal timeout", "setTimeout(`go()`, 10)", true},
		{"window dot timeout", `window.setTimeout("x()", 1)`, true},
		{"function reference", `setTimeout(doStuff, 100)`, false},
		{"arrow function", `setTimeout(() => go(), 100)`, false},
		{"string mention in assignment", `var s = "setTimeout(\"x\", 1)";`, false},
		{"unparseable fragment keeps finding", `then(setTimeout("x",`, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConfirmStringTimer(tc.line); got != tc.want {
				t.Errorf("ConfirmStringTimer(%q) = %v, want %v", tc.line, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if _, err := Parse(`var a = 1;`); err != nil {
		t.Errorf("expected valid JS to parse, got %v", err)
	}
	if _, err := Parse(`var a = {`); err == nil {
		t.Error("expected truncated JS to fail parsing")
	}
}
