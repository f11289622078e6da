package replay

// EventSchema validates a single event line. Unknown fields are allowed so
// recorders can carry extra metadata without breaking older readers.
const EventSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["event"],
  "properties": {
    "event": {
      "type": "string",
      "enum": ["begin", "testBegin", "testEnd", "end"]
    }
  },
  "allOf": [
    {
      "if": {"properties": {"event": {"const": "begin"}}},
      "then": {
        "required": ["tests"],
        "properties": {
          "config": {
            "type": "object",
            "properties": {
              "runId": {"type": "string"},
              "workers": {"type": "integer"},
              "projects": {
                "type": "array",
                "items": {
                  "type": "object",
                  "required": ["name"],
                  "properties": {
                    "name": {"type": "string"},
                    "browser": {"type": "string"},
                    "headless": {"type": "boolean"}
                  }
                }
              }
            }
          },
          "tests": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "file", "titlePath"],
              "properties": {
                "id": {"type": "string"},
                "file": {"type": "string"},
                "line": {"type": "integer"},
                "column": {"type": "integer"},
                "titlePath": {"type": "array", "items": {"type": "string"}},
                "retries": {"type": "integer", "minimum": 0},
                "outcome": {
                  "type": "string",
                  "enum": ["expected", "unexpected", "flaky", "skipped"]
                },
                "annotations": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["type"],
                    "properties": {
                      "type": {"type": "string"},
                      "description": {"type": "string"}
                    }
                  }
                }
              }
            }
          }
        }
      }
    },
    {
      "if": {"properties": {"event": {"const": "testBegin"}}},
      "then": {"required": ["testId"], "properties": {"testId": {"type": "string"}}}
    },
    {
      "if": {"properties": {"event": {"const": "testEnd"}}},
      "then": {
        "required": ["testId", "result"],
        "properties": {
          "testId": {"type": "string"},
          "result": {
            "type": "object",
            "required": ["status"],
            "properties": {
              "status": {
                "type": "string",
                "enum": ["passed", "failed", "timedOut", "skipped", "interrupted"]
              },
              "durationMs": {"type": "integer", "minimum": 0},
              "retry": {"type": "integer", "minimum": 0},
              "error": {
                "type": "object",
                "properties": {
                  "message": {"type": "string"},
                  "stack": {"type": "string"}
                }
              },
              "attachments": {
                "type": "array",
                "items": {
                  "type": "object",
                  "required": ["name"],
                  "properties": {
                    "name": {"type": "string"},
                    "contentType": {"type": "string"},
                    "path": {"type": "string"},
                    "body": {"type": "string"}
                  }
                }
              }
            }
          }
        }
      }
    },
    {
      "if": {"properties": {"event": {"const": "end"}}},
      "then": {
        "properties": {
          "status": {
            "type": "string",
            "enum": ["passed", "failed", "interrupted"]
          }
        }
      }
    }
  ]
}`
