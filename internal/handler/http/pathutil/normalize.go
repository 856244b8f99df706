package pathutil

import "strings"

// idRoutes are the routes with a numeric id segment, written as metric labels.
var idRoutes = []string{
	"/posts/admin/:id",
	"/posts/:id",
	"/categories/:id",
}

// NormalizePath maps a request path onto its route template so metric labels
// stay bounded: "/posts/123?page=1" and "/posts/123/" both become
// "/posts/:id". Paths matching no id route are returned without query or
// trailing slash.
func NormalizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	got := strings.Split(path, "/")
	for _, route := range idRoutes {
		if matches(strings.Split(route, "/"), got) {
			return route
		}
	}
	return path
}

func matches(route, path []string) bool {
	if len(route) != len(path) {
		return false
	}
	for i, seg := range route {
		if seg == ":id" {
			if !isDigits(path[i]) {
				return false
			}
			continue
		}
		if seg != path[i] {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
