package flatpak

import "strings"

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSpace(s), "\n")
}

func parseInstalled(out string) []App {
	lines := splitLines(out)
	apps := make([]App, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			continue
		}
		apps = append(apps, App{ID: parts[0], Name: parts[1]})
	}
	return apps
}

func parseRunning(out string) Running {
	running := Running{}
	for _, line := range splitLines(out) {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			continue
		}
		running[parts[1]] = parts[0]
	}
	return running
}

func parseSearch(out string) []Package {
	lines := splitLines(out)
	if len(lines) > 0 && (strings.Contains(lines[0], "Application") || strings.Contains(lines[0], "Name")) {
		lines = lines[1:]
	}
	packages := make([]Package, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		pkg := Package{
			ID:   strings.TrimSpace(parts[0]),
			Name: strings.TrimSpace(parts[1]),
		}
		if len(parts) > 2 {
			pkg.Description = strings.TrimSpace(parts[2])
		}
		packages = append(packages, pkg)
		if len(packages) == MaxSearchResults {
			break
		}
	}
	return packages
}
