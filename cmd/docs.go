package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootDoc = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

const childDoc = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// navOrder positions every command page in the docs sidebar.
var navOrder = map[string]int{
	"atomization-scorer_truth":   0,
	"atomization-scorer_compare": 1,
	"atomization-scorer_convert": 2,
	"atomization-scorer_filter":  3,
}

// docsCmd writes Markdown documentation pages for every command.
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Generate Markdown documentation pages",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./docs"
		if len(args) == 1 {
			dir = args[0]
		}
		return doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler)
	},
}

// filePrepender adds the YAML headings that are required by the just-the-docs
// theme.
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	base := pageBase(filename)
	if base == RootCmd.Name() {
		return fmt.Sprintf(rootDoc, RootCmd.Name(), 0)
	}

	title := strings.TrimPrefix(base, RootCmd.Name()+"_")
	return fmt.Sprintf(childDoc, title, RootCmd.Name(), navOrder[base])
}

// linkHandler returns the URL to a documentation page.
func linkHandler(filename string) string {
	base := pageBase(filename)
	if base == RootCmd.Name() {
		return "/"
	}
	return base
}

func pageBase(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}

func init() {
	RootCmd.AddCommand(docsCmd)
}
