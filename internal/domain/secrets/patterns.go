package secrets

import "regexp"

// Risk levels for findings, ordered from worst to mildest.
const (
	RiskCritical = "critical"
	RiskHigh     = "high"
	RiskMedium   = "medium"
	RiskLow      = "low"
)

type secretPattern struct {
	re   *regexp.Regexp
	raw  string
	kind string
	risk string
}

func mustPatterns(specs [][3]string) []secretPattern {
	out := make([]secretPattern, 0, len(specs))
	for _, s := range specs {
		out = append(out, secretPattern{
			re:   regexp.MustCompile(s[0]),
			raw:  s[0],
			kind: s[1],
			risk: s[2],
		})
	}
	return out
}

var secretPatterns = mustPatterns([][3]string{
	{`(?i)(?:api|access)[-_]?(?:key|token|secret)[-_]?(?:[0-9a-z]{32}|[0-9a-z]{16}|[0-9a-z]{64})`, "API Key/Token", RiskHigh},
	{`(?:[a-z0-9_-]{32,64})\b`, "Potential API Key/Token", RiskMedium},

	{`AKIA[0-9A-Z]{16}`, "AWS Access Key ID", RiskCritical},
	{`(?i)aws[-_]?(?:access|secret|session)[-_]?key[-_]?(?:id)?[-_]?[=: "']+([^'"\s]{16,})`, "AWS Key", RiskCritical},

	{`(?i)github[-_]?(?:key|token|secret)[-_]?(?:[0-9a-z]{35,40})`, "GitHub Token", RiskCritical},
	{`gh[pousr]_[A-Za-z0-9_]{36,255}`, "GitHub Personal Access Token", RiskCritical},

	{`AIza[0-9A-Za-z\-_]{35}`, "Google API Key", RiskCritical},
	{`(?i)google[-_]?(?:key|token|secret)[-_]?(?:[0-9a-z\-_]{24,})`, "Google Key", RiskCritical},

	{`(?i)discord(?:app)?[-_]?[a-z0-9]{24,}`, "Discord Token", RiskCritical},

	{`(?i)xox[baprs]-\d{12}-\d{12}-\d{24}`, "Slack Token", RiskCritical},

	{`(?i)twilio[-_]?(?:account|api|auth|sid)[-_]?[a-z0-9]{32}`, "Twilio API Key", RiskCritical},

	{`(?i)azure[-_]?(?:key|token|secret)[-_]?(?:[0-9a-zA-Z]{44})`, "Azure Key", RiskCritical},

	{`eyJ[A-Za-z0-9\-_=]+\.[A-Za-z0-9\-_=]+\.?[A-Za-z0-9\-_.+/=]*`, "JWT Token", RiskHigh},

	{`(?i)sk_(?:test|live)_[0-9a-z]{24,}`, "Stripe API Key", RiskCritical},
	{`(?i)pk_(?:test|live)_[0-9a-z]{24,}`, "Stripe Publishable Key", RiskHigh},

	{`(?i)(?:password|passwd|pwd)[-_]?[=: "']+([^'"\s]{8,})`, "Password", RiskHigh},
	{`(?i)(?:secret|token)[-_]?[=: "']+([^'"\s]{8,})`, "Secret", RiskHigh},

	{`(?i)(?:mongodb(?:\+srv)?|postgres(?:ql)?|mysql|redis)://[^'"\s]{8,}`, "Database Connection String", RiskCritical},
	{`(?i)(?:mongodb|postgres(?:ql)?|mysql|redis)[-_]?(?:uri|url|connection|host)`, "Database Connection Reference", RiskMedium},

	{`(?i)(?:SECRET_|TOKEN_|PASSWORD_|KEY_)[A-Z0-9_]+=.+`, "Environment Variable", RiskHigh},

	{`(?i)-----BEGIN (?:RSA|OPENSSH|DSA|EC|PGP) PRIVATE KEY( BLOCK)?-----`, "Private Key", RiskCritical},

	{`(?i)oauth[-_]?(?:key|token|secret)[-_]?(?:[0-9a-z]{32,})`, "OAuth Token", RiskHigh},

	{`(?i)(?:https?|ftp)://[^:@]+:[^@]+@.+`, "URL with Credentials", RiskHigh},
})

var sensitiveFiles = map[string]bool{
	".env":                   true,
	".env.local":             true,
	".env.development":       true,
	".env.production":        true,
	"credentials.json":       true,
	"secret_key":             true,
	"id_rsa":                 true,
	"id_dsa":                 true,
	"config.json":            true,
	"settings.json":          true,
	"application.properties": true,
	"application.yml":        true,
	"wp-config.php":          true,
	"config.php":             true,
	"secrets.yml":            true,
}

var sensitiveExtensions = []string{".pem", ".key", ".p12", ".pfx", ".keystore", ".jks"}

// excludeSubstrings are skipped by substring match against names;
// excludeSuffixes by suffix (lockfiles, minified bundles, media).
var (
	excludeSubstrings = []string{"node_modules", "venv", ".git", "__pycache__", "build", "dist", "vendor"}
	excludeSuffixes   = []string{
		".min.js", ".svg", ".png", ".jpg", ".jpeg", ".gif", ".ico", ".pdf",
		"package-lock.json", "yarn.lock",
	}
)

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".json": true, ".yaml": true, ".yml": true,
	".xml": true, ".csv": true, ".js": true, ".jsx": true, ".ts": true,
	".tsx": true, ".py": true, ".rb": true, ".php": true, ".java": true,
	".c": true, ".cpp": true, ".h": true, ".cs": true, ".go": true,
	".rs": true, ".sh": true, ".bat": true, ".html": true, ".htm": true,
	".css": true, ".scss": true, ".less": true, ".conf": true, ".cfg": true,
	".ini": true, ".properties": true, ".env": true,
}

var placeholders = []string{"YOUR_API_KEY", "YOUR_SECRET", "your-secret-key", "EXAMPLE_KEY", "SAMPLE_TOKEN"}
