package permissions

import "strings"

// Capability is the set of actions a session may perform on one module or
// submodule, plus the display metadata the UI renders alongside it.
type Capability struct {
	CanView    bool   `json:"can_view"`
	CanAdd     bool   `json:"can_add"`
	CanEdit    bool   `json:"can_edit"`
	CanDelete  bool   `json:"can_delete"`
	CanViewAll bool   `json:"can_view_all"`
	Name       string `json:"name,omitempty"`
	ModuleName string `json:"module_name,omitempty"`
	Route      string `json:"route,omitempty"`
	Icon       string `json:"icon,omitempty"`
}

// Grant is one entry of the permissions payload as the API returns it. The
// module and submodule ids are stable identifiers; the names are display
// labels and take no part in keying.
type Grant struct {
	ModuleID      string     `json:"module_id"`
	SubModuleID   string     `json:"sub_module_id,omitempty"`
	ModuleName    string     `json:"module_name"`
	SubModuleName string     `json:"sub_module_name,omitempty"`
	Route         string     `json:"route,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Capability    Capability `json:"permissions"`
}

// Set maps a stable capability key to the capability granted for it. Keys
// are built from module and submodule ids, never from display names, so two
// modules sharing a label cannot collide.
type Set map[string]Capability

// Key builds the lookup key for a module or module/submodule pair.
func Key(moduleID, subModuleID string) string {
	if subModuleID == "" {
		return moduleID
	}
	return moduleID + "/" + subModuleID
}

// BuildSet converts a permissions payload into a Set. The result is always a
// complete replacement for whatever the session held before; callers must
// not merge it into an existing set.
func BuildSet(grants []Grant) Set {
	set := make(Set, len(grants))
	for _, g := range grants {
		if strings.TrimSpace(g.ModuleID) == "" {
			continue
		}

		cap := g.Capability
		cap.ModuleName = g.ModuleName
		cap.Name = g.ModuleName
		if g.SubModuleName != "" {
			cap.Name = g.SubModuleName
		}
		if g.Route != "" {
			cap.Route = g.Route
		}
		if g.Icon != "" {
			cap.Icon = g.Icon
		}

		set[Key(g.ModuleID, g.SubModuleID)] = cap
	}
	return set
}

// Can reports whether the set grants viewing the given module. Missing
// entries deny.
func (s Set) Can(moduleID, subModuleID string) bool {
	cap, ok := s[Key(moduleID, subModuleID)]
	return ok && cap.CanView
}

// Get returns the capability for the given module, if any.
func (s Set) Get(moduleID, subModuleID string) (Capability, bool) {
	cap, ok := s[Key(moduleID, subModuleID)]
	return cap, ok
}
