package config

import "hotwatch/internal/version"

var (
	// Config search paths, tried in order when no explicit path is given

	// InDot is the path to the credentials file in ./
	InDot = "."
	// InHome is the path to the credentials file in $HOME/.config/{AppName}
	InHome = "$HOME/.config/" + version.AppName
	// InEtc is the path to the credentials file in /etc/{AppName}
	InEtc = "/etc/" + version.AppName

	// DefaultName is the credentials file name without extension
	DefaultName = "auth"
)
