package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"notekeeper/internal/notes/domain/query"
)

// SortFlag - порядок вывода заметок.
type SortFlag string

const (
	SortDateDesc  SortFlag = "date-desc"
	SortDateAsc   SortFlag = "date-asc"
	SortTitleAsc  SortFlag = "title-asc"
	SortTitleDesc SortFlag = "title-desc"
)

// Set implements pflag.Value.
func (s *SortFlag) Set(v string) error {
	if _, _, err := query.ParseSortOption(v); err != nil || v == "" {
		return fmt.Errorf("invalid value %q, valid values are %q, %q, %q or %q",
			v, SortDateDesc, SortDateAsc, SortTitleAsc, SortTitleDesc)
	}
	*s = SortFlag(v)
	return nil
}

// String implements pflag.Value.
func (s *SortFlag) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Type implements pflag.Value.
func (s *SortFlag) Type() string {
	return "SortFlag"
}

var (
	_ pflag.Value = (*SortFlag)(nil)
)
