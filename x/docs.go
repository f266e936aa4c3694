/*
Package x contains some standard extensions

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application.
The authentication helpers declared here are shared by all of them.
*/
package x
