// Package version expõe a versão do erp-reports, vinda de ldflags ou das informações de build.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cast"
)

const (
	devVersion    = "0.0.0-dev"
	releasesURL   = "https://api.github.com/repos/diillson/erp-reports/releases/latest"
	checkTimeout  = 3 * time.Second
	buildTimeForm = "2006-01-02T15:04:05Z"
)

// Set at link time: -ldflags "-X .../pkg/version.Version=1.2.0 -X .../pkg/version.Commit=abc1234".
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildSettings(bi.Settings)
	}
}

// applyBuildSettings completa Commit, BuildTime e Version a partir das chaves vcs.* do binário.
// Valores vindos de ldflags têm prioridade.
func applyBuildSettings(settings []debug.BuildSetting) {
	if Version != "" && Version != devVersion {
		return
	}

	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		vcs[s.Key] = s.Value
	}

	if rev := vcs["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if ts, err := time.Parse(time.RFC3339, vcs["vcs.time"]); BuildTime == "" && err == nil {
		BuildTime = ts.UTC().Format(buildTimeForm)
	}
	if tag := strings.TrimPrefix(vcs["vcs.tag"], "v"); tag != "" {
		Version = tag
		if strings.EqualFold(vcs["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// CheckLatestVersion avisa quando há um release mais novo. Falhas de rede são ignoradas.
func CheckLatestVersion(currentVersion string) {
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	latest, err := fetchLatestRelease(releasesURL)
	if err != nil || !isNewer(latest, currentVersion) {
		return
	}
	pterm.Warning.Println(fmt.Sprintf("A new version of erp-reports is available: %s", latest))
	pterm.Info.Println("Please update using: go install github.com/diillson/erp-reports/cmd/erp-reports@latest")
}

func fetchLatestRelease(url string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release check returned %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// isNewer compara versões "x.y.z" numericamente; sufixos como "-rc1" são ignorados.
func isNewer(latest, current string) bool {
	l, c := versionParts(latest), versionParts(current)
	for i := range l {
		if l[i] != c[i] {
			return l[i] > c[i]
		}
	}
	return false
}

func versionParts(v string) [3]int {
	var parts [3]int
	v, _, _ = strings.Cut(strings.TrimPrefix(v, "v"), "-")
	v, _, _ = strings.Cut(v, " ")
	for i, p := range strings.SplitN(v, ".", 3) {
		parts[i] = cast.ToInt(p)
	}
	return parts
}

// FormatVersion returns e.g. "1.2.3 (commit: abc1234, built at: 2026-02-03T16:45:00Z)",
// or "1.2.3 (development)" when neither commit nor build time is known.
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	}

	commit := Commit
	if commit == "" {
		commit = "development"
	}
	return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, commit, BuildTime)
}
