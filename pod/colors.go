package pod

func wrap(code, s string) string {
	return "\033[" + code + "m" + s + "\033[0m"
}

func ColorRed(s string) string {
	return wrap("31", s)
}

func ColorGreen(s string) string {
	return wrap("32", s)
}

func ColorYellow(s string) string {
	return wrap("33", s)
}

func ColorBlue(s string) string {
	return wrap("34", s)
}

func ColorGray(s string) string {
	return wrap("90", s)
}

// TeamFormatter colours a team number the way the overlay outlines it
func TeamFormatter(s string) string {
	switch s {
	case "0":
		return ColorRed(s)
	case "1":
		return ColorBlue(s)
	}
	return ColorYellow(s)
}

// HealthFormatter greys out dead entities
func HealthFormatter(s string) string {
	if len(s) > 0 && (s[0] == '-' || s == "0") {
		return ColorGray(s)
	}
	return ColorGreen(s)
}
