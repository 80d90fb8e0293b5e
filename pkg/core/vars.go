package core

import (
	"fmt"
	"os"
	"regexp"

	"github.com/arnavsurve/stepshot/pkg/types"
	"gopkg.in/yaml.v3"
)

// VarContext holds resolved input variables from a varfile.
type VarContext map[string]string

// varRegex is a package-level compiled regular expression for matching {{ varName }} placeholders.
var varRegex = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9\._-]+)\s*\}\}`)

var envRegex = regexp.MustCompile(`^\s*\{\{\s*env\.([A-Za-z0-9_]+)\s*}}\s*$`)

// ResolveVarfile loads a YAML varfile, parses it, and resolves {{ env.NAME }}
// values from the environment. Unset environment variables resolve to "".
func ResolveVarfile(path string, logger Logger) (VarContext, error) {
	if logger == nil {
		logger = types.NopLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading varfile %q: %w", path, err)
	}

	var rawVars map[string]string
	if err := yaml.Unmarshal(data, &rawVars); err != nil {
		return nil, fmt.Errorf("parsing varfile YAML from %q: %w", path, err)
	}

	resolvedCtx := make(VarContext, len(rawVars))
	for key, val := range rawVars {
		match := envRegex.FindStringSubmatch(val)
		if match == nil {
			resolvedCtx[key] = val
			continue
		}
		envVal, exists := os.LookupEnv(match[1])
		if !exists {
			logger.Warn().Str("var", key).Msgf("Environment variable %q not found", match[1])
		}
		resolvedCtx[key] = envVal
	}
	return resolvedCtx, nil
}

// ApplyInputDefaults fills in defaults for declared inputs the varfile left out.
func ApplyInputDefaults(s *Suite, varCtx VarContext) VarContext {
	if varCtx == nil {
		varCtx = make(VarContext)
	}
	for _, input := range s.Inputs {
		if _, exists := varCtx[input.Name]; !exists && input.Default != "" {
			varCtx[input.Name] = input.Default
		}
	}
	return varCtx
}

// ResolveStringWithContext replaces every {{ name }} placeholder. An unknown
// name is an error.
func ResolveStringWithContext(input string, globals VarContext) (string, error) {
	var firstErr error
	output := varRegex.ReplaceAllStringFunc(input, func(match string) string {
		if firstErr != nil {
			return match
		}

		key := varRegex.FindStringSubmatch(match)[1]
		val, found := globals[key]
		if !found {
			firstErr = fmt.Errorf("undefined variable: %s", key)
			return match
		}
		return val
	})

	if firstErr != nil {
		return "", firstErr
	}
	return output, nil
}

// ResolveSuite returns a copy of s with every placeholder in its url and use
// cases resolved. Used before a run, where an undefined variable is fatal.
func ResolveSuite(s *Suite, globals VarContext) (*Suite, error) {
	if s == nil {
		return nil, fmt.Errorf("resolving vars in nil suite")
	}

	resolved := copySuite(s)

	var err error
	resolved.URL, err = ResolveStringWithContext(s.URL, globals)
	if err != nil {
		return nil, fmt.Errorf("resolving url for suite %q: %w", s.Name, err)
	}

	for i := range resolved.Usecases {
		uc := &resolved.Usecases[i]
		uc.Selector, err = ResolveStringWithContext(uc.Selector, globals)
		if err != nil {
			return nil, fmt.Errorf("resolving selector of usecase %d: %w", i+1, err)
		}
		uc.Value, err = ResolveStringWithContext(uc.Value, globals)
		if err != nil {
			return nil, fmt.Errorf("resolving value of usecase %d: %w", i+1, err)
		}
	}

	return resolved, nil
}

// InjectVarsIntoSuite is kept for the linter: known placeholders are replaced
// and unknown ones are left as written.
func InjectVarsIntoSuite(s *Suite, globals VarContext) (*Suite, error) {
	if s == nil {
		return nil, fmt.Errorf("injecting vars into nil suite")
	}

	resolver := func(input string) string {
		return varRegex.ReplaceAllStringFunc(input, func(match string) string {
			key := varRegex.FindStringSubmatch(match)[1]
			if val, ok := globals[key]; ok {
				return val
			}
			return match
		})
	}

	updated := copySuite(s)
	updated.URL = resolver(updated.URL)
	for i := range updated.Usecases {
		updated.Usecases[i].Selector = resolver(updated.Usecases[i].Selector)
		updated.Usecases[i].Value = resolver(updated.Usecases[i].Value)
	}
	return updated, nil
}

func copySuite(s *Suite) *Suite {
	c := *s
	c.Inputs = append([]Input(nil), s.Inputs...)
	c.Usecases = append([]UseCase(nil), s.Usecases...)
	return &c
}
