// Package paths provides cross-platform path resolution for filebak's
// configuration and default backup locations.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory Specification
// compliance. On Linux, configuration lives under ~/.config/filebak and the
// default backup destination under ~/.local/share/filebak/backups.
package paths
