/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each package keeps its configuration as a single serialized object stored
under the "_c:<package>" key. The object is loaded from the "conf" section of
the genesis file once and can be read by handlers afterwards.

*/
package gconf
