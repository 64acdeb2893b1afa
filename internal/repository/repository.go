// Package repository holds one gorm-backed repository per entity.
// Repositories are constructed once at startup and injected into the
// handlers; nothing reaches for a global connection. Missing rows are
// reported as gorm.ErrRecordNotFound and translated at the HTTP layer.
package repository
