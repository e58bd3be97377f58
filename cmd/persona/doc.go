// Command persona imports administrator profiles from JSON exports and
// drives the two-stage portrait generation pipeline over them.
package main
