package rules

import "reviewd/internal/issue"

// builtinBundles returns the shipped per-language rule bundles. Patterns are
// data; engines never branch on language themselves.
func builtinBundles() []*Bundle {
	return []*Bundle{
		{
			Language: "python",
			// Python quality findings come from the structural pass; the
			// regex table only carries style-level idioms.
			Quality: []Rule{
				NewRule("py-bare-except", `(?m)^\s*except\s*:`, issue.SeverityLow, "",
					"Bare except clause swallows all errors. Catch specific exceptions."),
			},
			Security: []Rule{
				NewRule("py-eval", `eval\s*\(`, issue.SeverityHigh, "CWE-95",
					"Use of eval() is dangerous"),
				NewRule("py-exec", `exec\s*\(`, issue.SeverityHigh, "CWE-95",
					"Use of exec() is dangerous"),
				NewRule("py-dynamic-import", `__import__\s*\(`, issue.SeverityHigh, "CWE-95",
					"Dynamic import can be dangerous"),
				NewRule("py-pickle", `pickle\.loads?\s*\(`, issue.SeverityHigh, "CWE-502",
					"Pickle deserialization of untrusted data can be dangerous"),
				NewRule("py-yaml-load", `yaml\.load\s*\(`, issue.SeverityMedium, "CWE-502",
					"yaml.load() can be dangerous, use yaml.safe_load()"),
				NewRule("py-subprocess-shell", `subprocess\.\w+\s*\([^)]*shell\s*=\s*True`, issue.SeverityHigh, "CWE-78",
					"Shell spawning with shell=True enables command injection"),
			},
			Performance: []Rule{
				NewRule("py-range-len", `for\s+\w+\s+in\s+range\(len\([^)]+\)\)`, issue.SeverityLow, "",
					"Use enumerate() instead of range(len())"),
				NewRule("py-append-loop", `(?m)\.append\([^)]*\)\s*$`, issue.SeverityLow, "",
					"Consider using list comprehension for better performance"),
				NewRule("py-wildcard-import", `(?m)^\s*from\s+\S+\s+import\s+\*`, issue.SeverityLow, "",
					"Avoid wildcard imports for better performance"),
			},
		},
		{
			Language: "javascript",
			Quality: []Rule{
				NewRule("js-var", `(?m)\bvar\s+\w+`, issue.SeverityLow, "",
					"Consider using 'let' or 'const' instead of 'var'"),
				NewRule("js-loose-eq", `[^=!<>]==[^=]`, issue.SeverityLow, "",
					"Use strict equality (===) instead of loose equality (==)"),
				NewRule("js-console-log", `console\.log\(`, issue.SeverityLow, "",
					"Remove console.log statements from production code"),
			},
			Security: []Rule{
				NewRule("js-eval", `\beval\s*\(`, issue.SeverityHigh, "CWE-95",
					"Use of eval() is dangerous"),
				NewRule("js-function-ctor", `\bnew\s+Function\s*\(`, issue.SeverityHigh, "CWE-95",
					"Use of the Function constructor is dangerous"),
				NewRule("js-settimeout-string", `setTimeout\s*\([^,)]*["'][^"']*["']\s*\+`, issue.SeverityMedium, "CWE-95",
					"Dynamic code execution with setTimeout"),
				NewRule("js-setinterval-string", `setInterval\s*\([^,)]*["'][^"']*["']\s*\+`, issue.SeverityMedium, "CWE-95",
					"Dynamic code execution with setInterval"),
			},
			Performance: []Rule{
				NewRule("js-innerhtml-assign", `document\.getElementById\([^)]+\)\.innerHTML\s*=`, issue.SeverityMedium, "",
					"Use textContent instead of innerHTML for better performance"),
				NewRule("js-var-for", `for\s*\(\s*var\s+\w+\s*=\s*0`, issue.SeverityMedium, "",
					"Use let instead of var in for loops"),
			},
		},
		{
			Language: "java",
			Quality: []Rule{
				NewRule("java-sysout", `System\.out\.print`, issue.SeverityMedium, "",
					"Use proper logging instead of System.out.print"),
				NewRule("java-catch-exception", `catch\s*\(\s*Exception\s+\w+\s*\)`, issue.SeverityMedium, "",
					"Avoid catching generic Exception, be more specific"),
			},
			Security: []Rule{
				NewRule("java-runtime-exec", `Runtime\.getRuntime\(\)\.exec\s*\(`, issue.SeverityHigh, "CWE-78",
					"Command execution via Runtime.exec is a command injection risk"),
				NewRule("java-processbuilder-concat", `ProcessBuilder\s*\([^)]*\+`, issue.SeverityHigh, "CWE-78",
					"ProcessBuilder with concatenated input is a command injection risk"),
				NewRule("java-class-forname", `Class\.forName\s*\([^)]*\+`, issue.SeverityMedium, "CWE-95",
					"Reflection-based class loading from dynamic input can be dangerous"),
			},
		},
		{
			Language: "cpp",
			Quality: []Rule{
				NewRule("cpp-using-namespace-std", `using namespace std;`, issue.SeverityLow, "",
					"Avoid 'using namespace std' in header files"),
				NewRule("cpp-iostream", `#include\s*<iostream>`, issue.SeverityLow, "",
					"Consider using specific headers instead of iostream"),
			},
		},
		{
			Language: "go",
			Quality: []Rule{
				NewRule("go-panic", `\bpanic\s*\(`, issue.SeverityMedium, "",
					"Avoid using panic, return errors instead"),
				NewRule("go-fmt-print", `fmt\.Print`, issue.SeverityMedium, "",
					"Use proper logging instead of fmt.Print"),
			},
			Security: []Rule{
				NewRule("go-exec-command", `exec\.Command\s*\([^)]*\+`, issue.SeverityHigh, "CWE-78",
					"Process spawning with concatenated input is a command injection risk"),
			},
		},
		{
			Language: "rust",
			Quality: []Rule{
				NewRule("rust-unwrap", `\bunwrap\s*\(`, issue.SeverityMedium, "",
					"Consider using proper error handling instead of unwrap()"),
				NewRule("rust-println", `println!\s*\(`, issue.SeverityMedium, "",
					"Use proper logging instead of println! in production"),
			},
		},
	}
}
