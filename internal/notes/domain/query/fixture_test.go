package query_test

import (
	"fmt"

	"notekeeper/internal/notes/domain/entities"
)

type fixtureNote struct {
	title   string
	content string
	tags    []string
}

var fixtureNotebooks = map[string][]fixtureNote{
	"nb1": {
		{"Daily Standup", "Update team on the API integration progress and mention the blocker with the database.", []string{"work", "meetings"}},
		{"Client Presentation", "Prepare slides for the Friday demo showing the new dashboard features.", []string{"work"}},
		{"Code Review", "Review the pull request for the authentication module before merging to main.", []string{"work", "dev"}},
	},
	"nb2": {
		{"Portfolio Website", "Resize images for better performance and update the 'About Me' section.", []string{"dev"}},
		{"Learn Python", "Complete the chapter on data structures and write a script to automate file sorting.", []string{"dev", "learning"}},
		{"Photo Editing", "Edit the photos from the weekend trip and upload them to the cloud.", nil},
	},
	"nb3": {
		{"Weekend Groceries", "Pasta, tomato sauce, parmesan cheese, red wine, and sparkling water.", []string{"food", "fitness"}},
		{"Electronics Store", "HDMI cable, USB-C adapter, and a pack of AA batteries.", []string{"tech"}},
		{"Pharmacy", "Painkillers, sunscreen, and vitamins.", []string{"health", "fitness"}},
	},
	"nb4": {
		{"Exam Preparation", "Study chapter 4 to 7 for the Algorithms exam on Monday. Focus on sorting.", []string{"learning"}},
		{"Thesis Deadline", "Submit the first draft of the introduction by Friday 5 PM via email.", []string{"learning", "deadline"}},
		{"Group Project", "Meet with Sarah and Tom in the library to finalize the presentation slides.", []string{"meetings"}},
	},
}

// fixtureNotes строит 12 заметок в 4 блокнотах; updatedAt растет в порядке объявления.
func fixtureNotes() []entities.Note {
	var notes []entities.Note
	ts := int64(1_700_000_000_000)
	for _, nb := range []string{"nb1", "nb2", "nb3", "nb4"} {
		for i, f := range fixtureNotebooks[nb] {
			ts += 1000
			notes = append(notes, entities.Note{
				ID:         fmt.Sprintf("%s-%d", nb, i+1),
				NotebookID: nb,
				NoteFields: entities.NoteFields{
					Title:     f.title,
					Content:   f.content,
					Tags:      f.tags,
					UpdatedAt: ts,
				},
			})
		}
	}
	return notes
}

func titles(notes []entities.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}
