// Package entities defines the domain entities for the notes service.
package entities

import "slices"

// NoteFields - общая часть живой заметки и ее исторической версии.
type NoteFields struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	UpdatedAt int64    `json:"updatedAt"`
}

// Note - текущее состояние заметки.
type Note struct {
	ID         string `json:"id"`
	NotebookID string `json:"notebookId"`
	NoteFields
	Versions []NoteVersion `json:"versions"`
}

// NoteVersion - неизменяемый снимок заметки до очередного редактирования.
type NoteVersion struct {
	VersionID int    `json:"versionId"`
	ParentID  string `json:"parentId"`
	NoteFields
}

// Orphaned сообщает, что заметка не привязана к блокноту.
func (n Note) Orphaned() bool {
	return n.NotebookID == ""
}

// HasTags проверяет, что у заметки есть все перечисленные теги.
func (n Note) HasTags(tags []string) bool {
	for _, tag := range tags {
		if !slices.Contains(n.Tags, tag) {
			return false
		}
	}
	return true
}

// NextVersionID возвращает номер следующего снимка.
func (n Note) NextVersionID() int {
	next := len(n.Versions) + 1
	if last := len(n.Versions); last > 0 && n.Versions[last-1].VersionID >= next {
		next = n.Versions[last-1].VersionID + 1
	}
	return next
}

// Snapshot фиксирует текущее состояние как очередную версию.
func (n Note) Snapshot() NoteVersion {
	return NoteVersion{
		VersionID:  n.NextVersionID(),
		ParentID:   n.ID,
		NoteFields: n.NoteFields.Clone(),
	}
}

// Revise возвращает новую заметку: прежнее состояние уходит в историю, поля заменяются.
func (n Note) Revise(fields NoteFields) Note {
	revised := n.Clone()
	revised.Versions = append(revised.Versions, n.Snapshot())
	revised.NoteFields = fields.Clone()
	return revised
}

// Version ищет снимок по номеру.
func (n Note) Version(versionID int) (NoteVersion, bool) {
	for _, v := range n.Versions {
		if v.VersionID == versionID {
			return v.Clone(), true
		}
	}
	return NoteVersion{}, false
}

// Clone делает глубокую копию, чтобы вызывающий код не мог изменить историю.
func (n Note) Clone() Note {
	c := n
	c.NoteFields = n.NoteFields.Clone()
	c.Versions = make([]NoteVersion, len(n.Versions))
	for i, v := range n.Versions {
		c.Versions[i] = v.Clone()
	}
	return c
}

// Clone копирует снимок.
func (v NoteVersion) Clone() NoteVersion {
	v.NoteFields = v.NoteFields.Clone()
	return v
}

// Clone копирует поля, включая срез тегов.
func (f NoteFields) Clone() NoteFields {
	f.Tags = append(make([]string, 0, len(f.Tags)), f.Tags...)
	return f
}
