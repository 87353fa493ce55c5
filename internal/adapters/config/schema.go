package config

// Sitefile represents the structure of the optional sitepipe.yaml file.
type Sitefile struct {
	Server ServerDTO `yaml:"server"`
	Styles StylesDTO `yaml:"styles"`
	Watch  WatchDTO  `yaml:"watch"`
}

// ServerDTO configures the development server.
type ServerDTO struct {
	Addr string `yaml:"addr"`
}

// StylesDTO configures the browser targets stylesheets and scripts are lowered for.
type StylesDTO struct {
	Targets []string `yaml:"targets"`
}

// WatchDTO configures file watching. Debounce is a Go duration string such as "300ms".
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}
