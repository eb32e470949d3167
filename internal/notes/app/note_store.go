// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/domain/query"
	"notekeeper/internal/notes/ports/storage"
	"notekeeper/pkg/logger"
)

// DefaultStorageKey - ключ, под которым хранится коллекция заметок.
const DefaultStorageKey = "notes"

const (
	LogNotesLoaded       = "notes loaded"
	LogStorageEmpty      = "note storage is empty"
	LogStorageCorrupt    = "note storage is corrupt, starting with an empty collection"
	LogStorageReadFailed = "failed to read note storage, serving an empty collection until it recovers"
	LogIDsAssigned       = "assigned ids to stored notes without one"
	LogIDsPersistFailed  = "failed to persist assigned note ids"
	LogNoteCreated       = "note created"
	LogNoteUpdated       = "note updated"
	LogNoteDeleted       = "note deleted"
	LogNotebookCleared   = "notes of notebook deleted"

	ErrPersistNotes = "failed to persist notes"
	ErrLoadNotes    = "failed to load notes"
)

// Option настраивает NoteStore.
type Option func(*NoteStore)

// WithKey задает ключ хранилища.
func WithKey(key string) Option {
	return func(s *NoteStore) { s.key = key }
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *NoteStore) { s.now = now }
}

// WithIDGenerator подменяет генератор идентификаторов.
func WithIDGenerator(newID func() string) Option {
	return func(s *NoteStore) { s.newID = newID }
}

// NoteStore владеет коллекцией заметок и сохраняет ее целиком после каждого изменения.
// Если запись не удалась, коллекция в памяти остается прежней.
type NoteStore struct {
	blobs     storage.BlobStore
	validator *NoteValidator
	key       string
	now       func() time.Time
	newID     func() string

	mu     sync.Mutex
	notes  []entities.Note
	loaded bool
}

// NewNoteStore создает хранилище заметок поверх blobs.
func NewNoteStore(blobs storage.BlobStore, validator *NoteValidator, opts ...Option) *NoteStore {
	s := &NoteStore{
		blobs:     blobs,
		validator: validator,
		key:       DefaultStorageKey,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadAll перечитывает коллекцию из хранилища. Отсутствующие или поврежденные данные
// дают пустую коллекцию, ошибка не возвращается. Если хранилище недоступно, коллекция
// тоже пуста, но считается незагруженной: следующий вызов прочитает ее снова.
func (s *NoteStore) LoadAll(ctx context.Context) []entities.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = false
	_ = s.ensureLoaded(ctx)
	return cloneNotes(s.notes)
}

// List возвращает всю коллекцию.
func (s *NoteStore) List(ctx context.Context) []entities.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.ensureLoaded(ctx)
	return cloneNotes(s.notes)
}

// Query применяет фильтры к текущей коллекции.
func (s *NoteStore) Query(ctx context.Context, cfg query.Config) []entities.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.ensureLoaded(ctx)
	return query.Apply(s.notes, cfg)
}

// Tags возвращает все используемые теги.
func (s *NoteStore) Tags(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.ensureLoaded(ctx)
	return query.Tags(s.notes)
}

// Get возвращает заметку по id.
func (s *NoteStore) Get(ctx context.Context, noteID string) (entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.ensureLoaded(ctx)
	i := s.indexOf(noteID)
	if i < 0 {
		return entities.Note{}, fmt.Errorf("%w: %s", entities.ErrNotFound, noteID)
	}
	return s.notes[i].Clone(), nil
}

// Versions возвращает историю заметки от старых снимков к новым.
func (s *NoteStore) Versions(ctx context.Context, noteID string) ([]entities.NoteVersion, error) {
	note, err := s.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return note.Versions, nil
}

// Version возвращает один снимок. История при этом не меняется.
func (s *NoteStore) Version(ctx context.Context, noteID string, versionID int) (entities.NoteVersion, error) {
	note, err := s.Get(ctx, noteID)
	if err != nil {
		return entities.NoteVersion{}, err
	}
	v, ok := note.Version(versionID)
	if !ok {
		return entities.NoteVersion{}, fmt.Errorf("%w: %s version %d", entities.ErrNotFound, noteID, versionID)
	}
	return v, nil
}

// Create добавляет заметку в блокнот notebookID.
func (s *NoteStore) Create(ctx context.Context, notebookID, title, content string, tags []string) (entities.Note, error) {
	notebookID, fields, err := s.validator.Create(notebookID, title, content, tags)
	if err != nil {
		return entities.Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return entities.Note{}, err
	}

	fields.UpdatedAt = s.now().UnixMilli()
	note := entities.Note{
		ID:         s.newID(),
		NotebookID: notebookID,
		NoteFields: fields,
		Versions:   []entities.NoteVersion{},
	}

	next := append(cloneNotes(s.notes), note)
	if err := s.commit(ctx, next); err != nil {
		return entities.Note{}, err
	}

	logger.Log(ctx).Info(ctx, LogNoteCreated,
		zap.String("note_id", note.ID),
		zap.String("notebook_id", note.NotebookID))
	return note.Clone(), nil
}

// Update заменяет поля заметки, сохраняя прежнее состояние очередной версией.
func (s *NoteStore) Update(ctx context.Context, noteID, title, content string, tags []string) (entities.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return entities.Note{}, err
	}

	i := s.indexOf(noteID)
	if i < 0 {
		return entities.Note{}, fmt.Errorf("%w: %s", entities.ErrNotFound, noteID)
	}

	fields, err := s.validator.Update(title, content, tags)
	if err != nil {
		return entities.Note{}, err
	}
	fields.UpdatedAt = s.now().UnixMilli()

	next := cloneNotes(s.notes)
	next[i] = s.notes[i].Revise(fields)
	if err := s.commit(ctx, next); err != nil {
		return entities.Note{}, err
	}

	logger.Log(ctx).Info(ctx, LogNoteUpdated,
		zap.String("note_id", noteID),
		zap.Int("versions", len(next[i].Versions)))
	return next[i].Clone(), nil
}

// Delete удаляет заметку вместе с историей. Отсутствующий id не считается ошибкой.
func (s *NoteStore) Delete(ctx context.Context, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	i := s.indexOf(noteID)
	if i < 0 {
		return nil
	}

	next := slices.Delete(cloneNotes(s.notes), i, i+1)
	if err := s.commit(ctx, next); err != nil {
		return err
	}

	logger.Log(ctx).Info(ctx, LogNoteDeleted, zap.String("note_id", noteID))
	return nil
}

// DeleteByNotebook удаляет все заметки блокнота и возвращает их количество.
func (s *NoteStore) DeleteByNotebook(ctx context.Context, notebookID string) (int, error) {
	if notebookID == "" {
		return 0, fmt.Errorf("%w: empty notebook id", entities.ErrInvalidNotebook)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	next := slices.DeleteFunc(cloneNotes(s.notes), func(n entities.Note) bool {
		return n.NotebookID == notebookID
	})
	removed := len(s.notes) - len(next)
	if removed == 0 {
		return 0, nil
	}

	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}

	logger.Log(ctx).Info(ctx, LogNotebookCleared,
		zap.String("notebook_id", notebookID),
		zap.Int("deleted", removed))
	return removed, nil
}

// ensureLoaded читает коллекцию при первом обращении. Ошибка ввода-вывода оставляет
// коллекцию пустой и незагруженной, чтобы изменение не перезаписало недоступные данные.
func (s *NoteStore) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	notes, err := s.read(ctx)
	if err != nil {
		s.notes = []entities.Note{}
		return fmt.Errorf("%s: %w", ErrLoadNotes, err)
	}
	s.notes = notes
	s.loaded = true
	return nil
}

func (s *NoteStore) read(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("storage_key", s.key))

	data, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			log.Debug(ctx, LogStorageEmpty)
			return []entities.Note{}, nil
		}
		log.Warn(ctx, LogStorageReadFailed, zap.Error(err))
		return nil, err
	}

	assigned := 0
	notes, err := DecodeNotes(data, func() string {
		assigned++
		return s.newID()
	})
	if err != nil {
		log.Warn(ctx, LogStorageCorrupt, zap.Error(err))
		return []entities.Note{}, nil
	}

	// Выданные при загрузке id сохраняются сразу, иначе они сменятся при следующем чтении.
	if assigned > 0 {
		if err := s.persist(ctx, notes); err != nil {
			log.Warn(ctx, LogIDsPersistFailed, zap.Int("assigned", assigned), zap.Error(err))
		} else {
			log.Info(ctx, LogIDsAssigned, zap.Int("assigned", assigned))
		}
	}

	log.Debug(ctx, LogNotesLoaded, zap.Int("count", len(notes)))
	return notes, nil
}

func (s *NoteStore) commit(ctx context.Context, next []entities.Note) error {
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.notes = next
	return nil
}

func (s *NoteStore) persist(ctx context.Context, notes []entities.Note) error {
	data, err := EncodeNotes(notes)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPersistNotes, err)
	}
	if err := s.blobs.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%s: %w", ErrPersistNotes, err)
	}
	return nil
}

func (s *NoteStore) indexOf(noteID string) int {
	if noteID == "" {
		return -1
	}
	return slices.IndexFunc(s.notes, func(n entities.Note) bool {
		return n.ID == noteID
	})
}

func cloneNotes(notes []entities.Note) []entities.Note {
	out := make([]entities.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
