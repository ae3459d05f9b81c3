package scanner

import "github.com/K0NGR3SS/codesentry/internal/models"

// Rule IDs follow the OWASP Top 10 (2021) category they map to.
const (
	RuleCodeEval         = "A03-EVAL"
	RuleCommandInjection = "A03-CMD"
	RuleShellTrue        = "A03-SHELL"
	RuleSQLFormatting    = "A03-SQL"
	RuleDOMSink          = "A03-XSS"
	RuleDeserialization  = "A08-DESER"
	RuleUnsafeYAML       = "A08-YAML"
	RuleHardcodedSecret  = "A07-SECRET"
	RuleAWSAccessKey     = "A07-AWSKEY"
	RulePrivateKey       = "A02-PRIVKEY"
	RuleWeakHash         = "A02-HASH"
	RuleInsecureRandom   = "A02-RANDOM"
	RuleTLSVerifyOff     = "A02-TLS"
	RuleCleartextHTTP    = "A02-HTTP"
	RuleDebugEnabled     = "A05-DEBUG"
	RuleBindAll          = "A05-BIND"
	RuleTempFile         = "A01-TMPFILE"
)

func (s *Scanner) registerDefaultRules() {
	s.registerRule(RuleCodeEval, "Code Injection", models.RiskCritical,
		`\b(eval|exec)\s*\(`,
		`\.exec\s*\(|literal_eval`,
		"Never evaluate dynamic input. Parse data with a safe parser such as ast.literal_eval or json.loads.")

	s.registerRule(RuleCommandInjection, "OS Command Injection", models.RiskHigh,
		`\bos\.(system|popen)\s*\(|\bcommands\.getoutput\s*\(|\bRuntime\.getRuntime\(\)\.exec\s*\(|\bchild_process\.exec\s*\(`,
		"",
		"Run programs with an argument list (subprocess.run([...]) or exec.Command) and validate every user-supplied argument.")

	s.registerRule(RuleShellTrue, "Shell Injection via subprocess", models.RiskHigh,
		`\bsubprocess\.\w+\(.*shell\s*=\s*True`,
		"",
		"Drop shell=True and pass the command as a list so the shell never interprets user input.")

	s.registerRule(RuleSQLFormatting, "SQL Injection", models.RiskHigh,
		`(?i)\b(execute|executemany|raw|query|exec)\s*\(\s*(f["']|["'].*(select|insert|update|delete)\b.*["']\s*(%|\+|\.format\())`,
		"",
		"Use parameterized queries or prepared statements instead of building SQL with string formatting.")

	s.registerRule(RuleDOMSink, "Cross-Site Scripting (DOM sink)", models.RiskMedium,
		`\.(innerHTML|outerHTML)\s*=|\bdocument\.write(ln)?\s*\(|dangerouslySetInnerHTML|\|\s*safe\b|\bmark_safe\s*\(`,
		"",
		"Assign untrusted data through textContent or a templating engine with auto-escaping enabled.")

	s.registerRule(RuleDeserialization, "Insecure Deserialization", models.RiskHigh,
		`\b(pickle|cPickle|marshal|shelve|dill)\.loads?\s*\(|\bjsonpickle\.decode\s*\(`,
		"",
		"Do not deserialize untrusted data with pickle-style formats. Use JSON with schema validation.")

	s.registerRule(RuleUnsafeYAML, "Unsafe YAML Load", models.RiskHigh,
		`\byaml\.(load|load_all|unsafe_load)\s*\(`,
		`SafeLoader|CSafeLoader|BaseLoader`,
		"Use yaml.safe_load or pass Loader=yaml.SafeLoader.")

	s.registerRule(RuleHardcodedSecret, "Hardcoded Credential", models.RiskHigh,
		`(?i)\b\w*(password|passwd|pwd|secret|api_?key|token|auth_?key)\w*\s*[:=]\s*["'][^"'\s]{4,}["']`,
		`(?i)["'](changeme|example|placeholder|xxx+|\*+)["']|getenv|environ`,
		"Load credentials from the environment or a secrets manager instead of committing them to source.")

	s.registerRule(RuleAWSAccessKey, "AWS Access Key", models.RiskCritical,
		`\b(AKIA|ASIA)[0-9A-Z]{16}\b`,
		"",
		"Revoke the key, remove it from history and use IAM roles or a credential provider.")

	s.registerRule(RulePrivateKey, "Private Key", models.RiskCritical,
		`-----BEGIN\s+(RSA |DSA |EC |OPENSSH |ENCRYPTED |PGP )?PRIVATE KEY( BLOCK)?-----`,
		"",
		"Remove the key from source control, rotate it and load it from a protected file or secrets store.")

	s.registerRule(RuleWeakHash, "Weak Hash Algorithm", models.RiskMedium,
		`(?i)\bhashlib\.(md5|sha1)\s*\(|\bmd5\.New\s*\(|\bsha1\.New\s*\(|MessageDigest\.getInstance\(\s*"(MD5|SHA-?1)"|createHash\(\s*['"](md5|sha1)['"]`,
		`usedforsecurity\s*=\s*False`,
		"Use SHA-256 or stronger for integrity and a dedicated password hash (bcrypt, scrypt, argon2) for passwords.")

	s.registerRule(RuleInsecureRandom, "Insecure Randomness", models.RiskLow,
		`\brandom\.(random|randint|choice|randrange|getrandbits)\s*\(|\bMath\.random\s*\(`,
		"",
		"Use the secrets module (or crypto/rand) for tokens, passwords and anything security relevant.")

	s.registerRule(RuleTLSVerifyOff, "TLS Verification Disabled", models.RiskHigh,
		`verify\s*=\s*False|InsecureSkipVerify\s*:\s*true|_create_unverified_context|rejectUnauthorized\s*:\s*false|CERT_NONE`,
		"",
		"Keep certificate verification enabled and trust a custom CA bundle if you need one.")

	s.registerRule(RuleCleartextHTTP, "Cleartext HTTP URL", models.RiskLow,
		`["']http://`,
		`http://(localhost|127\.0\.0\.1|0\.0\.0\.0|\[::1\])|http://(www\.)?(w3\.org|example\.(com|org))`,
		"Use https:// for any endpoint that carries credentials or user data.")

	s.registerRule(RuleDebugEnabled, "Debug Mode Enabled", models.RiskMedium,
		`\bdebug\s*=\s*True\b|\bDEBUG\s*=\s*True\b|\.run\(.*debug\s*=\s*True`,
		"",
		"Disable debug mode outside development; it can expose stack traces and interactive consoles.")

	s.registerRule(RuleBindAll, "Service Bound to All Interfaces", models.RiskLow,
		`["']0\.0\.0\.0["']|host\s*=\s*["']::["']`,
		"",
		"Bind to localhost or an explicit interface unless the service must be publicly reachable.")

	s.registerRule(RuleTempFile, "Insecure Temporary File", models.RiskMedium,
		`\btempfile\.mktemp\s*\(|\bos\.tmpnam\s*\(|\bos\.tempnam\s*\(`,
		"",
		"Use tempfile.mkstemp or NamedTemporaryFile so the file is created atomically with safe permissions.")
}
