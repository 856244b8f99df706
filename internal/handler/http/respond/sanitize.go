package respond

import "regexp"

type redaction struct {
	re   *regexp.Regexp
	repl string
}

// redactions run in order; bearer tokens go before bare JWTs.
var redactions = []redaction{
	{regexp.MustCompile(`(?i)bearer\s+[^\s"',]+`), "Bearer ****"},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), "eyJ****"},
	{regexp.MustCompile(`sb_(secret|publishable)_[A-Za-z0-9_-]+`), "sb_${1}_****"},
	{regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`), "://$1:****@"},
	{regexp.MustCompile(`(?i)\bpassword=[^\s&]+`), "password=****"},
}

// SanitizeError returns err's message with credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, r := range redactions {
		msg = r.re.ReplaceAllString(msg, r.repl)
	}
	return msg
}
