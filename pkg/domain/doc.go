/*
Package domain contains the core state model for the commandbar engine.

It defines the normalized application state that toolbars are derived from. This package is kept
pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Tree: an immutable snapshot of application state (editor, github, screen and host slices).
  - Document: the active snippet, or one of the two sentinel documents.
  - Mode: the toolbar variant derived from the active document (normal, settings, null-document).
  - TreeDiff: the slices that changed between two revisions.
*/
package domain
