/*
Package server provides the standard approach to launching the quickstart HTTP service.

The execution mode is resolved from the first positional argument: any argument containing LOCAL selects
local mode, which binds localhost:8080 and decorates every response with permissive CORS headers.  Anything
else selects production mode, which binds all interfaces on the port named by the PORT environment variable.
A production launch without a usable PORT fails before any socket is opened.
*/
package server
