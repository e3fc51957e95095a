// Package migrations embarque les schémas SQL, un répertoire par moteur.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
