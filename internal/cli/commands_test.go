package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliHarness runs commands against one database in an isolated directory.
type cliHarness struct {
	t   *testing.T
	dir string
	db  string
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", dir)
	return &cliHarness{t: t, dir: dir, db: filepath.Join(dir, "apps.db")}
}

// run executes args with --db set and returns the exit code and both streams.
func (h *cliHarness) run(args ...string) (int, string, string) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--db", h.db}, args...)
	code := Execute(context.Background(), full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// runJSON executes args with --format json and decodes the envelope.
func (h *cliHarness) runJSON(args ...string) (int, CLIResponse, json.RawMessage) {
	h.t.Helper()
	code, stdout, _ := h.run(append([]string{"--format", "json"}, args...)...)

	var raw struct {
		CLIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(h.t, json.Unmarshal([]byte(stdout), &raw), "stdout: %s", stdout)
	raw.CLIResponse.Data = nil
	return code, raw.CLIResponse, raw.Data
}

func (h *cliHarness) add(company, role, date string) {
	h.t.Helper()
	code, _, stderr := h.run("add", "--company", company, "--role", role, "--date", date)
	require.Equal(h.t, ExitSuccess, code, stderr)
}

type jsonApp struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	DateApplied string `json:"date_applied"`
	Status      string `json:"status"`
}

func TestAdd_TextOutput(t *testing.T) {
	h := newCLIHarness(t)

	code, stdout, _ := h.run("add", "--company", "Acme", "--role", "Engineer", "--date", "2024-01-15")

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Added application 1: Acme, Engineer\n", stdout)
	assert.FileExists(t, h.db)
}

func TestAdd_JSONDefaultsStatus(t *testing.T) {
	h := newCLIHarness(t)

	code, resp, data := h.runJSON("add", "--company", "  Acme ", "--role", "Engineer", "--date", "2024-01-15")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "ok", resp.Status)

	var app jsonApp
	require.NoError(t, json.Unmarshal(data, &app))
	assert.Equal(t, jsonApp{ID: 1, Company: "Acme", Role: "Engineer", DateApplied: "2024-01-15", Status: "Applied"}, app)
}

func TestAdd_RejectsBadDate(t *testing.T) {
	h := newCLIHarness(t)

	code, _, stderr := h.run("add", "--company", "Acme", "--role", "Engineer", "--date", "15/01/2024")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "Error [VALIDATION]")
	assert.NoFileExists(t, h.db, "input is checked before the store is opened")
}

func TestAdd_RequiresCompany(t *testing.T) {
	h := newCLIHarness(t)

	code, _, stderr := h.run("add", "--role", "Engineer")

	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "Error [COMMAND_ERROR]")
	assert.Contains(t, stderr, "company")
}

func TestGet_NotFound(t *testing.T) {
	h := newCLIHarness(t)

	code, resp, _ := h.runJSON("get", "7")

	assert.Equal(t, ExitFailure, code)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestGet_BadID(t *testing.T) {
	h := newCLIHarness(t)

	code, _, stderr := h.run("get", "abc")

	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, `invalid id "abc"`)
}

func TestInvalidFormat(t *testing.T) {
	h := newCLIHarness(t)

	code, _, stderr := h.run("--format", "xml", "stats")

	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "invalid format")
}

func TestRecordLifecycle(t *testing.T) {
	h := newCLIHarness(t)
	h.add("A", "Engineer", "2024-01-01")
	h.add("B", "Designer", "2024-01-02")
	h.add("C", "Manager", "2024-01-03")

	code, stdout, _ := h.run("set-status", "2", "Interview")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Application 2 status set to Interview\n", stdout)

	code, stdout, _ = h.run("get", "2")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Company:   B")
	assert.Contains(t, stdout, "Status:    Interview")

	code, stdout, _ = h.run("delete", "1")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Deleted application 1\n", stdout)

	// B and C moved down to ids 1 and 2.
	code, _, data := h.runJSON("list", "--all")
	require.Equal(t, ExitSuccess, code)
	var apps []jsonApp
	require.NoError(t, json.Unmarshal(data, &apps))
	require.Len(t, apps, 2)
	assert.Equal(t, int64(1), apps[0].ID)
	assert.Equal(t, "B", apps[0].Company)
	assert.Equal(t, "Interview", apps[0].Status)
	assert.Equal(t, int64(2), apps[1].ID)
	assert.Equal(t, "C", apps[1].Company)

	code, _, _ = h.run("delete", "3")
	assert.Equal(t, ExitFailure, code)

	// The next insert takes id N+1.
	h.add("D", "Analyst", "2024-01-04")
	code, resp, data := h.runJSON("get", "3")
	require.Equal(t, ExitSuccess, code, resp.Error)
	var d jsonApp
	require.NoError(t, json.Unmarshal(data, &d))
	assert.Equal(t, "D", d.Company)
}

func TestList_FiltersAndPages(t *testing.T) {
	h := newCLIHarness(t)
	h.add("Acme", "Engineer", "2024-01-01")
	h.add("Globex", "Engineer", "2024-02-01")
	h.add("Initech", "Designer", "2024-03-01")

	code, _, data := h.runJSON("list", "--search", "ENGINEER", "--sort-by", "company", "--sort-order", "asc")
	require.Equal(t, ExitSuccess, code)

	var page struct {
		Data     []jsonApp `json:"data"`
		Total    int       `json:"total"`
		Page     int       `json:"page"`
		PageSize int       `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PageSize)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Acme", page.Data[0].Company)
	assert.Equal(t, "Globex", page.Data[1].Company)

	code, _, data = h.runJSON("list", "--page", "2", "--page-size", "2")
	require.Equal(t, ExitSuccess, code)
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Acme", page.Data[0].Company, "default sort is date applied, newest first")

	code, _, data = h.runJSON("list", "--from", "2024-02-01", "--to", "2024-02-28")
	require.Equal(t, ExitSuccess, code)
	require.NoError(t, json.Unmarshal(data, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Globex", page.Data[0].Company)
}

func TestList_PageSizeCappedByConfig(t *testing.T) {
	h := newCLIHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "tracker.yaml"), []byte("default_page_size: 2\nmax_page_size: 2\n"), 0o644))
	h.add("A", "r", "2024-01-01")
	h.add("B", "r", "2024-01-02")
	h.add("C", "r", "2024-01-03")

	code, _, data := h.runJSON("list", "--page-size", "50")
	require.Equal(t, ExitSuccess, code)

	var page struct {
		Data     []jsonApp `json:"data"`
		PageSize int       `json:"page_size"`
	}
	require.NoError(t, json.Unmarshal(data, &page))
	assert.Equal(t, 2, page.PageSize)
	assert.Len(t, page.Data, 2)
}

func TestList_RejectsBadDateFilter(t *testing.T) {
	h := newCLIHarness(t)

	code, resp, _ := h.runJSON("list", "--from", "yesterday")

	assert.Equal(t, ExitFailure, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION", resp.Error.Code)
}

func TestList_TextEmpty(t *testing.T) {
	h := newCLIHarness(t)

	code, stdout, _ := h.run("list")

	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "No applications found.\nPage 1 of 1 (0 total)\n", stdout)
}

func TestImport(t *testing.T) {
	h := newCLIHarness(t)
	path := filepath.Join(h.dir, "apps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- company: Acme
  role: Backend Engineer
  date_applied: 2024-01-15
  status: Applied
- company: Globex
  role: Designer
  date_applied: 2024-02-01
  location: Remote
`), 0o644))

	code, stdout, stderr := h.run("import", path)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "Imported 2 application(s)\n", stdout)

	code, _, data := h.runJSON("get", "2")
	require.Equal(t, ExitSuccess, code)
	var app struct {
		Company  string `json:"company"`
		Location string `json:"location"`
	}
	require.NoError(t, json.Unmarshal(data, &app))
	assert.Equal(t, "Globex", app.Company)
	assert.Equal(t, "Remote", app.Location)
}

func TestImport_InvalidRecordWritesNothing(t *testing.T) {
	h := newCLIHarness(t)
	path := filepath.Join(h.dir, "apps.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`- company: Acme
  role: Engineer
  date_applied: 2024-01-15
- company: ""
  role: Designer
  date_applied: 2024-02-01
`), 0o644))

	code, _, stderr := h.run("import", path)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "Error [VALIDATION]")

	code, stdout, _ := h.run("stats")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Total: 0")
}

func TestImport_MissingFile(t *testing.T) {
	h := newCLIHarness(t)

	code, _, stderr := h.run("import", filepath.Join(h.dir, "missing.yaml"))

	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "failed to read import file")
}

func TestExport_ToFile(t *testing.T) {
	h := newCLIHarness(t)
	h.add("Acme", "Engineer", "2024-01-01")
	h.add("Globex", "Designer", "2024-02-01")
	out := filepath.Join(h.dir, "out.csv")

	code, stdout, stderr := h.run("export", "--sort-by", "company", "--sort-order", "asc", "--out", out)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Equal(t, "Exported 2 application(s) to "+out+"\n", stdout)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Acme", rows[1][1])
	assert.Equal(t, "Globex", rows[2][1])
}

func TestExport_Stdout(t *testing.T) {
	h := newCLIHarness(t)
	h.add("Acme", "Engineer", "2024-01-01")

	code, stdout, _ := h.run("export", "--status", "Applied")

	require.Equal(t, ExitSuccess, code)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Acme")
}

func TestStatsAndCompact(t *testing.T) {
	h := newCLIHarness(t)
	h.add("A", "r", "2024-01-01")
	h.add("B", "r", "2024-01-02")
	code, _, _ := h.run("set-status", "2", "Offer")
	require.Equal(t, ExitSuccess, code)

	code, _, data := h.runJSON("stats")
	require.Equal(t, ExitSuccess, code)
	var stats struct {
		Total    int            `json:"total"`
		ByStatus map[string]int `json:"by_status"`
	}
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus["Applied"])
	assert.Equal(t, 1, stats.ByStatus["Offer"])

	code, stdout, _ := h.run("stats")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Total: 2")

	code, stdout, _ = h.run("compact")
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Renumbered 2 application(s)\n", stdout)
}

func TestConfigFile_MustExistWhenNamed(t *testing.T) {
	h := newCLIHarness(t)

	code, _, stderr := h.run("--config", filepath.Join(h.dir, "nope.yaml"), "stats")

	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "failed to load config")
}

func TestServe_StopsWhenContextCancelled(t *testing.T) {
	h := newCLIHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := Execute(ctx, []string{"--db", h.db, "serve", "--addr", "127.0.0.1:0"}, &stdout, &stderr)

	assert.Equal(t, ExitSuccess, code, stderr.String())
	assert.Contains(t, stdout.String(), "Listening on 127.0.0.1:")
}
