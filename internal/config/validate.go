package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err flattens the validation errors into one error, or nil when OK.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return fmt.Errorf("invalid config: %s", strings.Join(v.Errors, "; "))
}

// NormalizeAndValidate trims the string fields, fills defaults, and
// checks required keys. The returned copy is the one to run with.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.API.URL = strings.TrimSpace(out.API.URL)
	out.AWS.Bucket = strings.TrimSpace(out.AWS.Bucket)
	out.AWS.Folder = strings.TrimSpace(out.AWS.Folder)
	out.AWS.Region = strings.TrimSpace(out.AWS.Region)
	out.Output.File = strings.TrimSpace(out.Output.File)

	// defaults
	if out.AWS.Region == "" {
		out.AWS.Region = "us-east-1"
	}
	if out.Output.File == "" {
		out.Output.File = "jobs.csv"
	}

	// ---- Validation rules ----

	if out.API.URL == "" {
		res.addErr("api.url is required")
	} else if u, err := url.Parse(out.API.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		res.addErr("api.url must be an http(s) URL, got %q", out.API.URL)
	}

	if out.AWS.Bucket == "" {
		res.addErr("aws.bucket is required")
	}

	// the object key is folder + filename with nothing inserted between
	if out.AWS.Folder != "" && !strings.HasSuffix(out.AWS.Folder, "/") {
		res.addWarn("aws.folder %q has no trailing slash; the object key will be %q",
			out.AWS.Folder, out.AWS.Folder+out.Output.File)
	}

	if strings.ContainsAny(out.Output.File, "/\\") {
		res.addErr("output.file must be a bare file name, got %q", out.Output.File)
	}

	return out, res
}
