/*
Package commandbar derives a toolbar's visible configuration from application state and maps item
activations to intents.

The core is a graph of memoized derivations (package derive) over an immutable state tree
(package domain). Leaves read one slice of the tree; the mode, the run group and the two item lists
are composed on top of them. A derivation re-runs only when one of its inputs changed, so repeated
renders of the same revision return the very same slices.

# Concept

The engine never mutates state and never performs side effects. Toolbar items carry intent
producers; when the host activates an item, the produced intent is handed to an IntentSink
(package ports), which is where state transitions and I/O happen.

# Key Features

  - Memoized derivations with identity-stable output.
  - Exhaustive mode matching: an invalid mode aborts the derivation and surfaces as an error.
  - Injected intent constructors, so hosts can wrap or replace every message.
  - Hexagonal adapters for persistence (memory, file, redis), HTTP, MCP and terminal preview.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/commandbar"
		"github.com/aretw0/commandbar/pkg/domain"
	)

	func main() {
		engine := commandbar.New()

		tree := domain.NewTree().
			WithActiveDocument(&domain.Document{ID: "abc", Name: "Demo"}).
			WithWidth(1024)

		tb, err := engine.Toolbar(tree)
		if err != nil {
			log.Fatal(err)
		}
		for _, item := range tb.Items {
			fmt.Println(item.Key)
		}

		// Activate "Share > Copy to clipboard": the intent goes to the configured sink.
		if _, err := engine.Activate(context.Background(), tree, "share", "export-to-clipboard"); err != nil {
			log.Fatal(err)
		}
	}
*/
package commandbar
