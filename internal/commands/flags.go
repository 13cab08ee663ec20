package commands

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vibhu2208/hrms-backend-sub007/internal/models"
)

// parsePermissions reads "module:action,action" entries. Repeated modules
// are merged.
func parsePermissions(specs []string) ([]models.Permission, error) {
	var out []models.Permission
	index := map[string]int{}
	for _, spec := range specs {
		module, actions, ok := strings.Cut(spec, ":")
		module = strings.TrimSpace(module)
		if !ok || module == "" {
			return nil, fmt.Errorf("permission %q: want module:action[,action]", spec)
		}
		var acts []string
		for _, a := range strings.Split(actions, ",") {
			if a = strings.TrimSpace(a); a != "" {
				acts = append(acts, a)
			}
		}
		if len(acts) == 0 {
			return nil, fmt.Errorf("permission %q has no actions", spec)
		}
		if i, seen := index[module]; seen {
			for _, a := range acts {
				if !slices.Contains(out[i].Actions, a) {
					out[i].Actions = append(out[i].Actions, a)
				}
			}
			continue
		}
		index[module] = len(out)
		out = append(out, models.Permission{Module: module, Actions: acts})
	}
	return out, nil
}

// parseWhen accepts RFC 3339 or "2006-01-02 15:04" in local time.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: want RFC 3339 or \"YYYY-MM-DD HH:MM\"", s)
	}
	return t, nil
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
