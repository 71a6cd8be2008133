package domain

// DemoCredentials returns the built-in accounts, one per role. Secrets are
// stored in the clear; stores may hash them on seed.
func DemoCredentials() []Credential {
	return []Credential{
		{
			Identity: Identity{
				ID:        1,
				Email:     "admin@demo.com",
				Name:      "Admin User",
				Role:      RoleAdmin,
				AvatarURL: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=150&h=150&fit=crop&crop=face",
			},
			Secret: "admin123",
		},
		{
			Identity: Identity{
				ID:        2,
				Email:     "manager@demo.com",
				Name:      "Manager User",
				Role:      RoleManager,
				AvatarURL: "https://images.unsplash.com/photo-1494790108755-2616b612b786?w=150&h=150&fit=crop&crop=face",
			},
			Secret: "manager123",
		},
		{
			Identity: Identity{
				ID:        3,
				Email:     "user@demo.com",
				Name:      "Regular User",
				Role:      RoleUser,
				AvatarURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=150&h=150&fit=crop&crop=face",
			},
			Secret: "user123",
		},
	}
}
