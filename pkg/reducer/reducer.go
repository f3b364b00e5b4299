// Package reducer applies intents to state trees.
//
// It is the reference transition function used by the CLI, the HTTP server and the TUI preview.
// Intents with external effects (gists, clipboard, dialogs) are left to the host's IntentSink.
package reducer

import (
	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
)

// Reduce returns the tree that follows in. The second result is false when in does not change
// state; the input tree is then returned as is.
func Reduce(tree *domain.Tree, in intent.Intent) (*domain.Tree, bool) {
	switch in := in.(type) {
	case intent.UpdateDocumentOptions:
		if !isActive(tree, in.Document) {
			return tree, false
		}
		return tree.WithActiveDocument(tree.Editor.Active.WithOptions(in.Options)), true

	case intent.RemoveDocument:
		if !isActive(tree, in.Document) {
			return tree, false
		}
		return tree.WithEditor(domain.EditorState{}), true

	case intent.OpenDocument:
		if in.Document == nil {
			return tree, false
		}
		return tree.WithEditor(domain.EditorState{Active: in.Document}), true

	case intent.OpenSettings:
		if tree.ActiveDocument().ID == domain.SettingsDocumentID {
			return tree, false
		}
		return tree.WithEditor(domain.EditorState{
			Active:   domain.SettingsDocument(),
			Previous: tree.Editor.Active,
		}), true

	case intent.CloseSettings:
		if tree.ActiveDocument().ID != domain.SettingsDocumentID {
			return tree, false
		}
		return tree.WithEditor(domain.EditorState{Active: tree.Editor.Previous}), true

	case intent.RequestLogin:
		if tree.GitHub.IsLoggingInOrOut {
			return tree, false
		}
		gh := tree.GitHub
		gh.IsLoggingInOrOut = true
		return tree.WithGitHub(gh), true

	case intent.LoginSucceeded:
		return tree.WithGitHub(domain.GitHubState{Token: in.Token, Username: in.Username}), true

	case intent.LoginFailed:
		return tree.WithGitHub(domain.GitHubState{}), true

	case intent.RequestLogout:
		if tree.GitHub == (domain.GitHubState{}) {
			return tree, false
		}
		return tree.WithGitHub(domain.GitHubState{}), true

	case intent.Resize:
		if in.Width < 0 || in.Width == tree.Screen.Width {
			return tree, false
		}
		return tree.WithWidth(in.Width), true
	}
	return tree, false
}

func isActive(tree *domain.Tree, doc *domain.Document) bool {
	return doc != nil && tree.Editor.Active != nil && tree.Editor.Active.ID == doc.ID
}
