// Package core provides the shared geometry and color types of the
// renderer subsystem. It has no dependencies on the editing engine so that
// both the editor and the backends can import it.
package core
