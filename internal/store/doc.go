// Package store keeps the address book in memory and persists it as a single
// JSON file.
//
// The file is an object keyed by decimal ids:
//
//	{
//	    "1": {
//	        "nombre": "Ann",
//	        "telefono": "123456789",
//	        "email": "a@x.com",
//	        "direccion": {"calle": "Main", "numero": "42", "municipio": "", "cp": ""}
//	    }
//	}
//
// Ids are allocated from a counter recomputed as the highest id on load, so
// within one process an id is never handed out twice.
package store
