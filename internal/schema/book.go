package schema

import "encoding/json"

// BookSchema describes the persisted address book: an object keyed by
// positive decimal ids whose values are contact records. Only the shape is
// checked; field rules such as phone length belong to the contact package.
var BookSchema = json.RawMessage(`{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "propertyNames": {"pattern": "^[1-9][0-9]*$"},
  "additionalProperties": {
    "type": "object",
    "required": ["nombre", "telefono"],
    "properties": {
      "nombre": {"type": "string"},
      "telefono": {"type": "string"},
      "email": {"type": "string"},
      "direccion": {
        "type": "object",
        "properties": {
          "calle": {"type": "string"},
          "numero": {"type": "string"},
          "municipio": {"type": "string"},
          "cp": {"type": "string"}
        }
      }
    }
  }
}`)
