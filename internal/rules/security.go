package rules

import "reviewd/internal/issue"

// securityCatalog is the language-agnostic security rule catalog, grouped by
// category. Every file is scanned against all categories; language bundles
// add their own dangerous-call overlays on top.
var securityCatalog = []Rule{
	// Hardcoded secrets and credentials
	NewRule("sec-api-key", `(?i)(api[_-]?key|apikey)\s*[=:]\s*["']?[a-zA-Z0-9]{20,}["']?`,
		issue.SeverityHigh, "CWE-798", "Hardcoded API key detected"),
	NewRule("sec-secret-key", `(?i)(secret[_-]?key|secretkey)\s*[=:]\s*["']?[a-zA-Z0-9]{20,}["']?`,
		issue.SeverityHigh, "CWE-798", "Hardcoded secret key detected"),
	NewRule("sec-access-token", `(?i)(access[_-]?token|accesstoken)\s*[=:]\s*["']?[a-zA-Z0-9]{20,}["']?`,
		issue.SeverityHigh, "CWE-798", "Hardcoded access token detected"),
	NewRule("sec-password", `(?i)(password|passwd|pwd)\s*[=:]\s*["']?[^"'\s]{6,}["']?`,
		issue.SeverityHigh, "CWE-798", "Hardcoded password detected"),
	NewRule("sec-db-password", `(?i)(db[_-]?password|database[_-]?password)\s*[=:]\s*["']?[^"'\s]{6,}["']?`,
		issue.SeverityHigh, "CWE-798", "Hardcoded database password detected"),
	NewRule("sec-db-url-creds", `(?i)(mongodb|mysql|postgresql)://[^:]+:[^@]+@`,
		issue.SeverityHigh, "CWE-798", "Database credentials in connection string"),
	NewRule("sec-jwt", `eyJ[a-zA-Z0-9_-]*\.eyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*`,
		issue.SeverityMedium, "CWE-798", "JWT token detected (may contain sensitive data)"),

	// SQL injection
	NewRule("sec-sql-concat", `(?i)(SELECT|INSERT|UPDATE|DELETE)\s+[^\n]*\+[^\n]*["']`,
		issue.SeverityHigh, "CWE-89", "Potential SQL injection via string concatenation"),
	NewRule("sec-sql-interp", `(?i)(SELECT|INSERT|UPDATE|DELETE)\s+[^\n]*\$[^\n]*["']`,
		issue.SeverityHigh, "CWE-89", "Potential SQL injection via interpolation"),
	NewRule("sec-sql-format", `(?i)(SELECT|INSERT|UPDATE|DELETE)\s+[^\n]*%s[^\n]*["']`,
		issue.SeverityHigh, "CWE-89", "Potential SQL injection via format placeholder"),
	NewRule("sec-sql-execute", `(?i)execute\s*\(\s*["'][^"']*\+[^"']*["']`,
		issue.SeverityHigh, "CWE-89", "Dynamic SQL execution with string concatenation"),

	// Cross-site scripting
	NewRule("sec-xss-innerhtml", `(?i)innerHTML\s*=\s*[^;\n]*\+`,
		issue.SeverityMedium, "CWE-79", "Potential XSS vulnerability with innerHTML"),
	NewRule("sec-xss-docwrite", `(?i)document\.write\s*\([^)]*\+`,
		issue.SeverityMedium, "CWE-79", "Potential XSS vulnerability with document.write"),
	NewRule("sec-eval-dynamic", `(?i)eval\s*\([^)]*\+`,
		issue.SeverityHigh, "CWE-95", "Use of eval() with dynamic content"),

	// Weak / hardcoded authentication
	NewRule("sec-weak-password", `(?i)password\s*=\s*["'][^"']{1,7}["']`,
		issue.SeverityMedium, "CWE-521", "Weak password (too short)"),
	NewRule("sec-password-compare", `(?i)if\s*\(\s*password\s*==\s*["'][^"']+["']`,
		issue.SeverityHigh, "CWE-798", "Hardcoded password comparison"),
	NewRule("sec-admin-creds", `(?i)admin\s*=\s*["'][^"']+["']`,
		issue.SeverityMedium, "CWE-798", "Hardcoded admin credentials"),

	// Broken cryptography
	NewRule("sec-md5", `(?i)\bmd5\s*\(`,
		issue.SeverityMedium, "CWE-327", "MD5 is cryptographically broken, use SHA-256 or better"),
	NewRule("sec-sha1", `(?i)\bsha1\s*\(`,
		issue.SeverityMedium, "CWE-327", "SHA-1 is cryptographically broken, use SHA-256 or better"),
	NewRule("sec-des", `(?i)\bdes\s*\(`,
		issue.SeverityHigh, "CWE-327", "DES is cryptographically broken, use AES"),
	NewRule("sec-weak-random", `(?i)\brandom\s*\(\s*\)`,
		issue.SeverityMedium, "CWE-330", "Use a cryptographically secure random number generator"),

	// Path traversal / dynamic code loading
	NewRule("sec-open-concat", `(?i)\bopen\s*\([^)]*\+[^)]*\)`,
		issue.SeverityMedium, "CWE-22", "Potential path traversal vulnerability"),
	NewRule("sec-fgc-concat", `(?i)file_get_contents\s*\([^)]*\+[^)]*\)`,
		issue.SeverityMedium, "CWE-22", "Potential path traversal vulnerability"),
	NewRule("sec-include-concat", `(?i)\binclude\s*\([^)]*\+[^)]*\)`,
		issue.SeverityHigh, "CWE-94", "Potential code injection vulnerability"),
	NewRule("sec-require-concat", `(?i)\brequire\s*\([^)]*\+[^)]*\)`,
		issue.SeverityHigh, "CWE-94", "Potential code injection vulnerability"),

	// Insecure transport
	NewRule("sec-http-url", `(?i)http://[^"'\s]+`,
		issue.SeverityMedium, "CWE-319", "Insecure HTTP connection detected"),
	NewRule("sec-ftp-url", `(?i)ftp://[^"'\s]+`,
		issue.SeverityMedium, "CWE-319", "Insecure FTP connection detected"),
	NewRule("sec-curl-http", `(?i)curl\s+[^"']*http://`,
		issue.SeverityMedium, "CWE-319", "Insecure HTTP request with curl"),

	// Unvalidated external input
	NewRule("sec-raw-input", `(?i)\braw_input\s*\(`,
		issue.SeverityLow, "CWE-20", "Input not validated or sanitized"),
	NewRule("sec-request-get", `(?i)request\.get\s*\([^)]*\)`,
		issue.SeverityLow, "CWE-20", "Request parameter not validated"),
}

// SecurityCatalog returns the language-agnostic security rules.
func SecurityCatalog() []Rule {
	return securityCatalog
}

// secretPatterns matches well-known credential formats. This pass is gated
// separately from the category catalog (config: security.check_secrets).
var secretPatterns = []Rule{
	NewRule("secret-aws-key-id", `\bAKIA[0-9A-Z]{16}\b`,
		issue.SeverityHigh, "CWE-798", "AWS Access Key ID detected"),
	NewRule("secret-aws-secret", `(?i)aws[_-]?secret[_-]?access[_-]?key\s*[=:]\s*["']?[A-Za-z0-9/+=]{40}["']?`,
		issue.SeverityHigh, "CWE-798", "AWS Secret Access Key detected"),
	NewRule("secret-github-pat", `\bghp_[0-9a-zA-Z]{36}\b`,
		issue.SeverityHigh, "CWE-798", "GitHub Personal Access Token detected"),
	NewRule("secret-github-oauth", `\bgho_[0-9a-zA-Z]{36}\b`,
		issue.SeverityHigh, "CWE-798", "GitHub OAuth Token detected"),
	NewRule("secret-google-api", `\bAIza[0-9A-Za-z_-]{35}\b`,
		issue.SeverityHigh, "CWE-798", "Google API Key detected"),
	NewRule("secret-slack-bot", `xoxb-[0-9]{11}-[0-9]{11}-[0-9a-zA-Z]{24}`,
		issue.SeverityHigh, "CWE-798", "Slack Bot Token detected"),
	NewRule("secret-private-key", `-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`,
		issue.SeverityHigh, "CWE-798", "Private key material detected"),
	NewRule("secret-hex-32", `\b[0-9a-f]{32}\b`,
		issue.SeverityMedium, "CWE-798", "Potential MD5 hash or token detected"),
	NewRule("secret-hex-40", `\b[0-9a-f]{40}\b`,
		issue.SeverityMedium, "CWE-798", "Potential SHA-1 hash or token detected"),
}

// SecretPatterns returns the credential-format detection table.
func SecretPatterns() []Rule {
	return secretPatterns
}
