/*
Package toolbar derives the editor toolbar from a domain.Tree.

New builds a graph of memoized derivations (see package derive). Leaves read one slice of the
tree; the mode, run group and item lists are composed on top of them:

	sel := toolbar.New(intent.DefaultCreators())
	tb := sel.Toolbar(tree)

	item, _ := tb.Find("share", "new-public-gist")
	in := item.Action() // handed to an IntentSink, never dispatched by the graph

Items carry intent producers, not intents. Nothing in this package performs side effects.
*/
package toolbar
