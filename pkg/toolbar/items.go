package toolbar

import (
	"fmt"

	"github.com/aretw0/commandbar/pkg/domain"
	"github.com/aretw0/commandbar/pkg/intent"
)

// CustomFunctionsRoute is the view the Register button navigates to.
const CustomFunctionsRoute = "./#/custom-functions?backButton=true"

// Icon names understood by renderers.
const (
	IconBack              = "Back"
	IconGlobalNav         = "GlobalNavButton"
	IconPlay              = "Play"
	IconDelete            = "Delete"
	IconShare             = "Share"
	IconSave              = "Save"
	IconPageCheckedIn     = "PageCheckedIn"
	IconProtectedDocument = "ProtectedDocument"
	IconClipboard         = "ClipboardSolid"
	IconOfficeAddinsLogo  = "OfficeAddinsLogo"
	IconRefresh           = "Refresh"
)

const (
	titlePadding       = "3rem"
	hiddenTitlePadding = "0"

	untrustedRunMessage = "You must trust the snippet before you can run it."
	signInTitle         = "Please sign in to GitHub"
	signInSubText       = "In order to use the gist functionality, you must first sign in to GitHub."
)

// builder holds the combiners of the graph. It owns nothing but the injected creators.
type builder struct {
	creators intent.Creators
}

func (b builder) runGroup(doc *domain.Document, runnable, customFunctions, trusted bool) []Item {
	c := b.creators
	switch {
	case !runnable:
		return []Item{}
	case customFunctions:
		return []Item{{
			Key:    "register-cf",
			Text:   "Register",
			Icon:   IconPlay,
			Action: intent.Static(c.Navigate(CustomFunctionsRoute)),
		}}
	}

	run := Item{Key: "run", Text: "Run", Icon: IconPlay}
	if trusted {
		run.Action = c.NavigateToRun
	} else {
		run.Action = func() intent.Intent {
			return c.ShowMessage(intent.MessageError, untrustedRunMessage, &intent.MessageButton{
				Text:   "Trust",
				Action: c.UpdateDocumentOptions(doc, domain.DocumentOptions{IsUntrusted: false}),
			})
		}
	}
	return []Item{run}
}

func (b builder) items(mode domain.Mode, doc *domain.Document, hideTitle, loggedIn bool, runGroup []Item) []Item {
	return domain.MatchMode(mode,
		func() []Item { return b.normalItems(doc, hideTitle, loggedIn, runGroup) },
		func() []Item { return b.settingsItems(doc, hideTitle) },
		func() []Item { return []Item{} },
	)
}

func (b builder) settingsItems(doc *domain.Document, hideTitle bool) []Item {
	return []Item{
		{
			Key:       "back",
			AriaLabel: "Back",
			IconOnly:  true,
			Icon:      IconBack,
			Action:    b.creators.CloseSettings,
		},
		title("settings-title", doc.Name, hideTitle),
	}
}

func (b builder) normalItems(doc *domain.Document, hideTitle, loggedIn bool, runGroup []Item) []Item {
	c := b.creators

	items := make([]Item, 0, 4+len(runGroup))
	items = append(items,
		Item{
			Key:       "nav",
			AriaLabel: "Backstage",
			IconOnly:  true,
			Icon:      IconGlobalNav,
			Action:    c.OpenBackstage,
		},
		title("solution-name", doc.Name, hideTitle),
	)
	items = append(items, runGroup...)
	items = append(items,
		Item{
			Key:  "delete",
			Text: "Delete",
			Icon: IconDelete,
			Action: func() intent.Intent {
				return c.ShowDialog("Delete Snippet?",
					fmt.Sprintf("Are you sure you want to delete '%s'?", doc.Name),
					intent.DialogButton{Text: "Yes", Action: c.RemoveDocument(doc), IsPrimary: true},
					intent.DialogButton{Text: "No", Action: c.DismissDialog()},
				)
			},
		},
		Item{
			Key:     "share",
			Text:    "Share",
			Icon:    IconShare,
			SubMenu: visible(b.shareCandidates(doc, loggedIn)),
		},
	)
	return items
}

func (b builder) farItems(mode domain.Mode, loggedIn, loggingInOrOut bool) []Item {
	return domain.MatchMode(mode,
		func() []Item { return []Item{b.account(loggedIn, loggingInOrOut)} },
		func() []Item { return []Item{} },
		func() []Item { return []Item{} },
	)
}

func (b builder) account(loggedIn, loggingInOrOut bool) Item {
	c := b.creators
	account := Item{
		Key:       "account",
		AriaLabel: "Login",
		IconOnly:  true,
		Action:    c.RequestLogin,
	}
	if loggedIn {
		account.AriaLabel = "Logout"
		account.SubMenu = []Item{{
			Key:    "logout",
			Text:   "Logout",
			Action: c.RequestLogout,
		}}
	}
	if loggingInOrOut {
		account.Action = intent.Noop()
	}
	return account
}

// candidate is an item whose visibility is decided before the list is exposed. It never leaves
// this package: visible drops the hidden ones and projects the rest to Item.
type candidate struct {
	hidden bool
	item   Item
}

func visible(candidates []candidate) []Item {
	items := make([]Item, 0, len(candidates))
	for _, c := range candidates {
		if c.hidden {
			continue
		}
		items = append(items, c.item)
	}
	return items
}

func (b builder) shareCandidates(doc *domain.Document, loggedIn bool) []candidate {
	c := b.creators
	id := doc.ID

	// The sign-in dialog does not carry the gist request: after logging in the user has to pick
	// the share entry again.
	newGist := func(public bool) intent.Producer {
		if !loggedIn {
			return intent.Static(b.signInDialog())
		}
		return func() intent.Intent { return c.RequestGistCreate(id, public) }
	}

	return []candidate{
		{
			hidden: !(doc.IsGist() && loggedIn),
			item: Item{
				Key:    "update-gist",
				Text:   "Update existing gist",
				Icon:   IconSave,
				Action: func() intent.Intent { return c.RequestGistUpdate(id) },
			},
		},
		{item: Item{Key: "new-public-gist", Text: "New public gist", Icon: IconPageCheckedIn, Action: newGist(true)}},
		{item: Item{Key: "new-secret-gist", Text: "New secret gist", Icon: IconProtectedDocument, Action: newGist(false)}},
		{
			item: Item{
				Key:       "export-to-clipboard",
				Text:      "Copy to clipboard",
				Icon:      IconClipboard,
				ClassName: "export-to-clipboard",
				Action:    func() intent.Intent { return c.CopyToClipboard(id) },
			},
		},
	}
}

func (b builder) signInDialog() intent.Intent {
	c := b.creators
	return c.ShowDialog(signInTitle, signInSubText,
		intent.DialogButton{Text: "Sign in", Action: c.RequestLogin(), IsPrimary: true},
		intent.DialogButton{Text: "Cancel", Action: c.DismissDialog()},
	)
}

func title(key, text string, hidden bool) Item {
	item := Item{Key: key, Text: text, PaddingRight: titlePadding}
	if hidden {
		item.PaddingRight = hiddenTitlePadding
		item.Icon = IconOfficeAddinsLogo
		item.IconOnly = true
	}
	return item
}
