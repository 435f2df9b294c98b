/*
Package resource defines the application resource collaborator: the single component which supplies the
routes a launcher serves.  The launcher owns the router and hands it to exactly one Resource.
*/
package resource
