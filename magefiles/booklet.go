//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Booklet builds the CLI and writes booklet.docx from chep_data.csv.
func Booklet() error {
	mg.Deps(Build)
	return sh.RunV(binPath)
}

// Catalog records the current sessions in catalog/booklet.db.
func Catalog() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "catalog", "store")
}

// PDF rebuilds the booklet and converts it to booklet.pdf.
func PDF() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "pdf", "--build")
}
