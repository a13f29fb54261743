// Package watch re-renders an event script whenever it changes on disk.
// It monitors the script's directory, debounces rapid editor events, and
// triggers the render callback after each quiet period.
package watch
