//Package chemjson implements serialization and unserialization of
//molview structures, so programs written in any language can send atom
//records to a viewer and read back what it built from them, for
//instance through UNIX pipes.
//
//Records are {"symbol":"C","position":[x,y,z]} objects. A stream can be
//either one JSON array of records or one record per line.
package chemjson
