package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpages/internal/config"
	"github.com/alnah/go-mdpages/internal/fileutil"
	"github.com/alnah/go-mdpages/internal/pipeline"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Pandoc   toolInfo     `json:"pandoc"`
	Chrome   chromeInfo   `json:"chrome"`
	Env      envInfo      `json:"environment"`
	Dirs     dirInfo      `json:"directories"`
	Sources  []sourceInfo `json:"sources"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// toolInfo holds detection results for an external program.
type toolInfo struct {
	Found    bool   `json:"found"`
	Required bool   `json:"required"` // a selected pipeline needs it
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	toolInfo
	Sandbox bool `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// dirInfo holds the resolved directories.
type dirInfo struct {
	Docs           string `json:"docs"`
	DocsFound      bool   `json:"docs_found"`
	Output         string `json:"output"`
	OutputWritable bool   `json:"output_writable"`
}

// sourceInfo counts the page sources present for one pipeline.
type sourceInfo struct {
	Pipeline string   `json:"pipeline"`
	Found    int      `json:"found"`
	Total    int      `json:"total"`
	Missing  []string `json:"missing,omitempty"`
}

// doctorProbe holds the system lookups, replaced in tests.
type doctorProbe struct {
	lookPath   func(file string) (string, error)
	findChrome func() (string, bool)
	version    func(bin string) (string, error)
}

func defaultProbe() doctorProbe {
	return doctorProbe{
		lookPath:   exec.LookPath,
		findChrome: launcher.LookPath,
		version:    toolVersion,
	}
}

// toolVersion returns the first line printed by `bin --version`.
func toolVersion(bin string) (string, error) {
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- bin comes from config or PATH lookup
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config   string
	pipeline string
	docs     string
	output   string
	json     bool
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	return runDoctorWith(args, env, defaultProbe())
}

func runDoctorWith(args []string, env *Environment, probe doctorProbe) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	f := &doctorFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.pipeline, "pipeline", "p", "", "pipeline name or \"all\"")
	fs.StringVar(&f.docs, "docs", "", "source documents directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVar(&f.json, "json", false, "machine-readable output")

	if err := parseFlagSet(fs, args, env.Stderr, printDoctorUsage); err != nil {
		return finish(err, env)
	}

	envCfg := loadEnvConfig()
	cfg, err := resolveConfig(firstNonEmpty(f.config, envCfg.ConfigPath), env)
	if err != nil {
		return finish(withHint(err, hintFor(err, nil)), env)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(&sourceFlags{docs: f.docs, output: f.output}, &renderFlags{}, cfg)

	selected, err := cfg.Select(firstNonEmpty(f.pipeline, envCfg.Pipeline, config.DefaultPipeline))
	if err != nil {
		return finish(withHint(err, hintFor(err, cfg)), env)
	}

	result := runDoctor(cfg, selected, probe)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, selected []config.PipelineConfig, probe doctorProbe) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	needsPandoc := slices.ContainsFunc(selected, func(p config.PipelineConfig) bool {
		return p.Converter == pipeline.ConverterPandoc
	})

	checkPandoc(result, cfg.Pandoc.Bin, needsPandoc, probe)
	checkChrome(result, cfg.PDF.Enabled, probe)
	checkEnvironment(result)
	checkDirectories(result, cfg, selected)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkPandoc locates the pandoc binary. Missing pandoc is an error only
// when a selected pipeline converts with it.
func checkPandoc(result *doctorResult, bin string, required bool, probe doctorProbe) {
	if bin == "" {
		bin = pipeline.DefaultPandocBin
	}
	result.Pandoc.Required = required

	path, err := probe.lookPath(bin)
	if err != nil {
		msg := fmt.Sprintf("pandoc not found (%s)", bin)
		if required {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Warnings = append(result.Warnings, msg+"; only needed by pandoc pipelines")
		}
		return
	}

	result.Pandoc.Found = true
	result.Pandoc.Path = path
	if v, err := probe.version(path); err == nil {
		result.Pandoc.Version = v
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get pandoc version: %v", err))
	}
}

// checkChrome detects Chrome/Chromium installation. Missing Chrome is an
// error only when PDF export is enabled.
func checkChrome(result *doctorResult, required bool, probe doctorProbe) {
	result.Chrome.Required = required
	report := func(msg string) {
		if required {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Warnings = append(result.Warnings, msg+"; only needed for --pdf")
		}
	}

	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = probe.findChrome()
		if !found {
			report("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		report(fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	if v, err := probe.version(chromePath); err == nil {
		result.Chrome.Version = v
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	// Sandbox status: disabled if ROD_NO_SANDBOX=1
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" && result.Chrome.Required {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("MDPAGES_CONTAINER") == "1" {
		return true, "MDPAGES_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkDirectories verifies the docs dir and its sources, and that every
// selected output dir is writable. Output dirs are created if missing.
func checkDirectories(result *doctorResult, cfg *config.Config, selected []config.PipelineConfig) {
	result.Dirs.Docs = cfg.DocsDir
	if info, err := os.Stat(cfg.DocsDir); err == nil && info.IsDir() {
		result.Dirs.DocsFound = true
	} else {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Docs directory not found: %s", cfg.DocsDir))
	}

	var outputs []string
	for _, p := range selected {
		dir := cfg.PipelineOutputDir(p)
		if !slices.Contains(outputs, dir) {
			outputs = append(outputs, dir)
		}
	}
	result.Dirs.Output = strings.Join(outputs, ", ")
	result.Dirs.OutputWritable = true
	for _, dir := range outputs {
		if err := fileutil.CheckWritableDir(dir); err != nil {
			result.Dirs.OutputWritable = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Output directory not writable: %v", err))
		}
	}

	if !result.Dirs.DocsFound {
		return
	}
	for _, p := range selected {
		info := sourceInfo{Pipeline: p.Name, Total: len(p.Pages)}
		for _, page := range p.Pages {
			if fileutil.FileExists(filepath.Join(cfg.DocsDir, page.Source)) {
				info.Found++
			} else if !page.Optional {
				info.Missing = append(info.Missing, page.Source)
			}
		}
		if len(info.Missing) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: missing sources will be skipped: %s", p.Name, strings.Join(info.Missing, ", ")))
		}
		result.Sources = append(result.Sources, info)
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mdpages doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pandoc")
	printTool(w, r.Pandoc, "not needed by the selected pipelines")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	printTool(w, r.Chrome.toolInfo, "only needed for --pdf")
	if r.Chrome.Found {
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Directories")
	if r.Dirs.DocsFound {
		fmt.Fprintf(w, "  [OK] Docs: %s\n", r.Dirs.Docs)
	} else {
		fmt.Fprintf(w, "  [ERROR] Docs: %s (not found)\n", r.Dirs.Docs)
	}
	if r.Dirs.OutputWritable {
		fmt.Fprintf(w, "  [OK] Output: %s (writable)\n", r.Dirs.Output)
	} else {
		fmt.Fprintf(w, "  [ERROR] Output: %s (not writable)\n", r.Dirs.Output)
	}
	for _, s := range r.Sources {
		tag := "[OK]"
		if len(s.Missing) > 0 {
			tag = "[WARN]"
		}
		fmt.Fprintf(w, "  %s Sources for %s: %d/%d found\n", tag, s.Pipeline, s.Found, s.Total)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printTool(w io.Writer, t toolInfo, optional string) {
	if !t.Found {
		if t.Required {
			fmt.Fprintln(w, "  [ERROR] Not found")
		} else {
			fmt.Fprintf(w, "  [WARN] Not found (%s)\n", optional)
		}
		return
	}
	fmt.Fprintf(w, "  [OK] Found at %s\n", t.Path)
	if t.Version != "" {
		fmt.Fprintf(w, "  [OK] Version: %s\n", t.Version)
	}
}
