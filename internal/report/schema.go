package report

// Schema is the JSON Schema (Draft 2020-12) for the dermis analyze
// JSON output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/dermis/analyze-report.schema.json",
  "title": "Dermis Analyze Report",
  "description": "Output schema for dermis analyze --format=json",
  "type": "object",
  "required": ["products", "routines", "conflicts", "metadata"],
  "properties": {
    "products": {
      "type": "array",
      "items": { "$ref": "#/$defs/ProductAnalysis" }
    },
    "routines": {
      "type": "array",
      "items": { "$ref": "#/$defs/Routine" }
    },
    "conflicts": { "$ref": "#/$defs/ConflictReport" },
    "metadata": { "$ref": "#/$defs/Metadata" }
  },
  "$defs": {
    "Category": {
      "type": "string",
      "enum": [
        "cleanser", "toner", "serum", "moisturizer",
        "sunscreen", "mask", "treatment", "other"
      ]
    },
    "TimeOfDay": {
      "type": "string",
      "enum": ["morning", "evening"]
    },
    "Ingredient": {
      "type": "object",
      "required": ["name", "purpose", "beneficial"],
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "purpose": {
          "type": "string",
          "description": "What the ingredient does, or 'Unknown'"
        },
        "concern": {
          "type": "string",
          "description": "Optional caveat; independent of beneficial"
        },
        "beneficial": { "type": "boolean" }
      }
    },
    "Product": {
      "type": "object",
      "required": ["id", "name", "brand", "category", "ingredients", "routines"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "name": { "type": "string" },
        "brand": { "type": "string" },
        "category": { "$ref": "#/$defs/Category" },
        "image_url": { "type": "string" },
        "description": { "type": "string" },
        "ingredients": {
          "type": "array",
          "items": { "$ref": "#/$defs/Ingredient" }
        },
        "routines": {
          "type": "array",
          "items": { "$ref": "#/$defs/TimeOfDay" },
          "uniqueItems": true
        },
        "rating": { "type": "number" }
      }
    },
    "IngredientAnalysis": {
      "type": "object",
      "required": ["beneficial", "concerning", "summary"],
      "properties": {
        "beneficial": {
          "type": "array",
          "items": { "$ref": "#/$defs/Ingredient" }
        },
        "concerning": {
          "type": "array",
          "items": { "$ref": "#/$defs/Ingredient" }
        },
        "summary": { "type": "string" }
      }
    },
    "ProductAnalysis": {
      "type": "object",
      "required": ["product", "analysis", "safety_score"],
      "properties": {
        "product": { "$ref": "#/$defs/Product" },
        "analysis": { "$ref": "#/$defs/IngredientAnalysis" },
        "safety_score": {
          "type": "integer",
          "minimum": 0,
          "maximum": 100
        }
      }
    },
    "Routine": {
      "type": "object",
      "required": ["time", "steps"],
      "properties": {
        "time": { "$ref": "#/$defs/TimeOfDay" },
        "steps": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["step", "product"],
            "properties": {
              "step": { "type": "integer", "minimum": 1 },
              "product": { "$ref": "#/$defs/Product" }
            }
          }
        }
      }
    },
    "ConflictPair": {
      "type": "object",
      "required": ["rule", "first", "second", "shared_routines"],
      "properties": {
        "rule": {
          "type": "string",
          "description": "Conflict rule that matched (e.g. retinoid+aha)"
        },
        "first": { "$ref": "#/$defs/Product" },
        "second": { "$ref": "#/$defs/Product" },
        "shared_routines": {
          "type": "array",
          "items": { "$ref": "#/$defs/TimeOfDay" },
          "minItems": 1
        }
      }
    },
    "ConflictReport": {
      "type": "object",
      "required": ["has_conflicts", "message"],
      "properties": {
        "has_conflicts": { "type": "boolean" },
        "message": { "type": "string" },
        "conflicting_pairs": {
          "type": "array",
          "items": { "$ref": "#/$defs/ConflictPair" }
        }
      }
    },
    "Metadata": {
      "type": "object",
      "required": ["dermis_version", "duration_ms", "warnings"],
      "properties": {
        "dermis_version": { "type": "string" },
        "timestamp": {
          "type": "string",
          "description": "RFC 3339 timestamp of the run"
        },
        "duration_ms": {
          "type": "integer",
          "minimum": 0
        },
        "warnings": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    }
  }
}`
