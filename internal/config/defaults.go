package config

// DefaultTreeStores returns the JSON bookmark files of the supported
// Chromium-family browsers on macOS, relative to the home directory.
func DefaultTreeStores() []TreeStoreConfig {
	return []TreeStoreConfig{
		{Browser: "Chromium", Path: "Library/Application Support/Chromium/Default/Bookmarks"},
		{Browser: "Brave", Path: "Library/Application Support/BraveSoftware/Brave-Browser/Default/Bookmarks"},
		{Browser: "Brave Dev", Path: "Library/Application Support/BraveSoftware/Brave-Browser-Dev/Default/Bookmarks"},
		{Browser: "Chrome", Path: "Library/Application Support/Google/Chrome/Default/Bookmarks"},
		{Browser: "Vivaldi", Path: "Library/Application Support/Vivaldi/Default/Bookmarks"},
		{Browser: "Opera", Path: "Library/Application Support/com.operasoftware.Opera/Bookmarks"},
	}
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Home:       "",
		TreeStores: DefaultTreeStores(),
		Places: PlacesConfig{
			Browser:     "Firefox",
			ProfileRoot: "Library/Application Support/Firefox/Profiles",
			Database:    "places.sqlite",
			ScratchDir:  "",
		},
		Search: SearchConfig{
			FallbackURL:  "https://www.google.com/search?q=%s",
			FallbackName: "Google",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			File:       "",
			MaxSize:    10,
			MaxBackups: 3,
		},
	}
}
