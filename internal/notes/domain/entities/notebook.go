package entities

// Notebook - именованный контейнер заметок.
type Notebook struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// FindNotebook возвращает блокнот с заданным id.
func FindNotebook(notebooks []Notebook, id string) (Notebook, bool) {
	for _, nb := range notebooks {
		if nb.ID == id {
			return nb, true
		}
	}
	return Notebook{}, false
}
