/*
Package session implements session management and persistence orchestration.

A session is one state tree kept in a ports.TreeStore. The Manager serialises access per session
(a refcounted local mutex plus an optional distributed lock across replicas), reduces dispatched
intents into new revisions and publishes every committed change to subscribers, which is how the
HTTP adapter streams toolbar updates.
*/
package session
