// cmd/notekeeper/cmd/init.go
package cmd

import (
	"notekeeper/cmd/notekeeper/cmd/note"
)

func init() {
	// Команды работы с заметками
	rootCmd.AddCommand(note.NoteCmd)
	note.NoteCmd.AddCommand(note.CreateCmd)
	note.NoteCmd.AddCommand(note.ListCmd)
	note.NoteCmd.AddCommand(note.ViewCmd)
	note.NoteCmd.AddCommand(note.EditCmd)
	note.NoteCmd.AddCommand(note.DeleteCmd)
	note.NoteCmd.AddCommand(note.SearchCmd)
	note.NoteCmd.AddCommand(note.ExportCmd)

	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(menuCmd)
}
