// Package repository provides generic repository contracts over entities, an
// in-memory CRUD engine with a filter, sort and paginate search pipeline, and
// a Bun-backed engine implementing the same contracts.
package repository
