package ai

import "fmt"

const qualitySystemPrompt = "You are an expert code reviewer. You respond only with JSON."

const qualityPromptFormat = `Analyze the following %[1]s code for quality issues.

File: %[2]s
Code:
%[3]s

Look for:
1. Code quality issues (complexity, readability, maintainability)
2. Best practices violations
3. Improvement opportunities

Respond with JSON of the form:
{"issues": [{"severity": "HIGH|MEDIUM|LOW", "message": "...", "line": 1}]}`

const securitySystemPrompt = "You are a security expert reviewing source code. You respond only with JSON."

const securityPromptFormat = `Analyze the following %[1]s code for security vulnerabilities.

File: %[2]s
Code:
%[3]s

Look for:
1. Hardcoded secrets or credentials
2. SQL injection vulnerabilities
3. XSS vulnerabilities
4. Input validation issues
5. Authentication/authorization problems
6. Insecure cryptographic practices

Respond with JSON of the form:
{"issues": [{"severity": "HIGH|MEDIUM|LOW", "message": "...", "line": 1}]}`

func qualityPrompt(language, path, code string) (system, user string) {
	return qualitySystemPrompt, fmt.Sprintf(qualityPromptFormat, language, path, code)
}

func securityPrompt(language, path, code string) (system, user string) {
	return securitySystemPrompt, fmt.Sprintf(securityPromptFormat, language, path, code)
}
