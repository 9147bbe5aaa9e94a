// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/pysort/internal/category"
	"fillmore-labs.com/pysort/internal/config"
)

// Option configures specific behavior of a [New] pysort analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithConfig is an [Option] replacing the base configuration; later
// options still apply on top.
func WithConfig(cfg config.Config) Option { return configOption{cfg: cfg} }

type configOption struct{ cfg config.Config }

func (o configOption) apply(r *runOptions) {
	r.cfg = o.cfg
}

func (o configOption) LogAttr() slog.Attr {
	return slog.String("config", o.cfg.Preset)
}

// WithPreset is an [Option] selecting the built-in category preset.
func WithPreset(preset string) Option { return presetOption{preset: preset} }

type presetOption struct{ preset string }

func (o presetOption) apply(r *runOptions) {
	r.cfg.Preset = o.preset
}

func (o presetOption) LogAttr() slog.Attr {
	return slog.String("preset", o.preset)
}

// WithOverrides is an [Option] adjusting or extending the preset's categories.
func WithOverrides(overrides ...category.Override) Option {
	return overridesOption{overrides: overrides}
}

type overridesOption struct{ overrides []category.Override }

func (o overridesOption) apply(r *runOptions) {
	r.cfg.Overrides = append(r.cfg.Overrides, o.overrides...)
}

func (o overridesOption) LogAttr() slog.Attr {
	return slog.Int("overrides", len(o.overrides))
}

// WithCategories is an [Option] to configure multi-category
// classification; when disabled only the public/private split applies.
func WithCategories(categories bool) Option { return categoriesOption{categories: categories} }

type categoriesOption struct{ categories bool }

func (o categoriesOption) apply(r *runOptions) {
	r.cfg.Behavior.Set(config.EnableCategories, o.categories)
}

func (o categoriesOption) LogAttr() slog.Attr {
	return slog.Bool("categories", o.categories)
}

// WithSectionHeaders is an [Option] to configure validation of section
// header comments.
func WithSectionHeaders(headers bool) Option { return headersOption{headers: headers} }

type headersOption struct{ headers bool }

func (o headersOption) apply(r *runOptions) {
	r.cfg.Behavior.Set(config.EnforceSectionHeaders, o.headers)
}

func (o headersOption) LogAttr() slog.Attr {
	return slog.Bool("section-headers", o.headers)
}

// WithRequireHeaders is an [Option] to report populated categories
// without a section header.
func WithRequireHeaders(require bool) Option { return requireOption{require: require} }

type requireOption struct{ require bool }

func (o requireOption) apply(r *runOptions) {
	r.cfg.Behavior.Set(config.RequireSectionHeaders, o.require)
}

func (o requireOption) LogAttr() slog.Attr {
	return slog.Bool("require-headers", o.require)
}

// WithAllowEmptySections is an [Option] to permit headers whose category
// has no members.
func WithAllowEmptySections(allow bool) Option { return allowEmptyOption{allow: allow} }

type allowEmptyOption struct{ allow bool }

func (o allowEmptyOption) apply(r *runOptions) {
	r.cfg.Behavior.Set(config.AllowEmptySections, o.allow)
}

func (o allowEmptyOption) LogAttr() slog.Attr {
	return slog.Bool("allow-empty-sections", o.allow)
}

// WithAddHeaders is an [Option] to make the fixer insert missing section
// headers.
func WithAddHeaders(add bool) Option { return addHeadersOption{add: add} }

type addHeadersOption struct{ add bool }

func (o addHeadersOption) apply(r *runOptions) {
	r.cfg.Behavior.Set(config.AddSectionHeaders, o.add)
}

func (o addHeadersOption) LogAttr() slog.Attr {
	return slog.Bool("add-headers", o.add)
}

// WithBackup is an [Option] to keep a .bak copy of rewritten files.
func WithBackup(backup bool) Option { return backupOption{backup: backup} }

type backupOption struct{ backup bool }

func (o backupOption) apply(r *runOptions) {
	r.cfg.Behavior.Set(config.WriteBackup, o.backup)
}

func (o backupOption) LogAttr() slog.Attr {
	return slog.Bool("backup", o.backup)
}

// WithIgnoreDecorators is an [Option] listing decorator patterns whose
// declarations keep their position.
func WithIgnoreDecorators(patterns ...string) Option {
	return ignoreOption{patterns: patterns}
}

type ignoreOption struct{ patterns []string }

func (o ignoreOption) apply(r *runOptions) {
	r.cfg.IgnoreDecorators = append(r.cfg.IgnoreDecorators, o.patterns...)
}

func (o ignoreOption) LogAttr() slog.Attr {
	return slog.Any("ignore-decorators", o.patterns)
}

// WithPublicPatterns is an [Option] extending the entry-point names
// exempt from should-be-private advice.
func WithPublicPatterns(names ...string) Option { return publicOption{names: names} }

type publicOption struct{ names []string }

func (o publicOption) apply(r *runOptions) {
	r.cfg.PublicPatterns = append(r.cfg.PublicPatterns, o.names...)
}

func (o publicOption) LogAttr() slog.Attr {
	return slog.Any("public-patterns", o.names)
}

// WithProjectRoot is an [Option] enabling the cross-module usage
// analysis over the given directory tree.
func WithProjectRoot(root string) Option { return rootOption{root: root} }

type rootOption struct{ root string }

func (o rootOption) apply(r *runOptions) {
	r.root = o.root
}

func (o rootOption) LogAttr() slog.Attr {
	return slog.String("project-root", o.root)
}
