package domain

// MenuItem is one navigation entry. Entries with a Title and no Path are section
// headers; they render in navigation but never grant a route.
type MenuItem struct {
	ID       string     `json:"id,omitempty"`
	Title    string     `json:"title,omitempty"`
	Label    string     `json:"label,omitempty"`
	Path     string     `json:"path,omitempty"`
	Icon     string     `json:"icon,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

// Dashboard paths.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathUsers     = "/dashboard/users"
	PathProducts  = "/dashboard/products"
	PathAddProd   = "/dashboard/products/add"
	PathAnalytics = "/dashboard/analytics"
	PathSettings  = "/dashboard/settings"
)

var (
	itemDashboard = MenuItem{ID: "dashboard", Label: "Dashboard", Path: PathDashboard, Icon: "LayoutDashboard"}
	itemUsers     = MenuItem{ID: "users", Label: "Users", Path: PathUsers, Icon: "Users"}
	itemProducts  = MenuItem{ID: "products", Label: "Products", Path: PathProducts, Icon: "Package"}
	itemAnalytics = MenuItem{ID: "analytics", Label: "Analytics", Path: PathAnalytics, Icon: "BarChart3"}
	itemSettings  = MenuItem{ID: "settings", Label: "Settings", Path: PathSettings, Icon: "Settings"}
)

// roleMenus is the single source of truth for both navigation and route access.
var roleMenus = map[Role][]MenuItem{
	RoleAdmin: {
		{Title: "General"},
		itemDashboard,
		{Title: "Management"},
		itemUsers,
		{
			ID:    "products",
			Label: "Products",
			Path:  PathProducts,
			Icon:  "Package",
			Children: []MenuItem{
				{ID: "all-products", Label: "All products", Path: PathProducts},
				{ID: "add-product", Label: "Add product", Path: PathAddProd},
			},
		},
		itemAnalytics,
		itemSettings,
	},
	RoleManager: {
		itemDashboard,
		itemProducts,
		itemAnalytics,
		itemSettings,
	},
	RoleUser: {
		itemDashboard,
		itemProducts,
	},
}

// MenuTable returns a deep copy of the role menu table entry for r.
// Unknown roles yield nil.
func MenuTable(r Role) []MenuItem {
	return cloneMenu(roleMenus[r])
}

func cloneMenu(items []MenuItem) []MenuItem {
	if items == nil {
		return nil
	}
	out := make([]MenuItem, len(items))
	for i, it := range items {
		out[i] = it
		out[i].Children = cloneMenu(it.Children)
	}
	return out
}
