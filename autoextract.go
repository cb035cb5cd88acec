// Package autoextract provides rule-free extraction of link lists from
// HTML pages. It locates the repeated title-plus-link structures that
// make up index pages (news front pages, blog archives, search results)
// by comparing the structural shape of sibling elements, without any
// site-specific selectors or templates.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, etree/).
package autoextract
