package handler

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Data-Science-Wallah/pdf-to-doc/internal/service"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ConversionStatusHeader carries the pipeline status message on stateless
// conversion responses, where the body is the DOCX itself.
const ConversionStatusHeader = "X-Conversion-Status"

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal: validation and translation only, business logic
// lives in the service.
func RegisterRoutes(app *fiber.App, db *sql.DB, convSvc service.ConversionService, archiveEnabled bool) {
	// Single-page upload UI
	app.Get("/", IndexPage())

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	// Stateless conversion: PDF in, DOCX out, nothing retained
	app.Post("/convert", ConvertDocument(convSvc))

	if archiveEnabled {
		app.Post("/conversions", CreateConversion(convSvc))
		app.Get("/conversions", ListConversions(convSvc))
		app.Get("/conversions/:id", GetConversion(convSvc))
		app.Get("/conversions/:id/download", DownloadConversion(convSvc))
		app.Delete("/conversions/:id", DeleteConversion(convSvc))
	}
}

// HealthCheck reports readiness based on database connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// readUpload pulls the multipart "file" field into memory. On validation
// failure it writes the error response itself and reports ok=false; the
// caller must return nil so the written response is not overwritten by the
// global error handler.
func readUpload(c *fiber.Ctx) (data []byte, filename string, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		return nil, "", false
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		_ = writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_TYPE", "only PDF uploads are supported")
		return nil, "", false
	}

	f, err := fh.Open()
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		return nil, "", false
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		return nil, "", false
	}
	return data, fh.Filename, true
}

// ConvertDocument converts an uploaded PDF and returns the DOCX directly as
// an attachment. The status message travels in a response header since the
// body is the document itself.
func ConvertDocument(convSvc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, filename, ok := readUpload(c)
		if !ok {
			return nil
		}

		res, err := convSvc.Convert(c.UserContext(), data, filename)
		if err != nil {
			return writePipelineError(c, err)
		}

		c.Set(fiber.HeaderContentType, docxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+res.OutputFilename+`"`)
		c.Set(ConversionStatusHeader, res.StatusMessage)
		return c.Send(res.DocxBytes)
	}
}

// CreateConversion converts an uploaded PDF, archives the result, and
// returns the conversion record (including status message and preview).
func CreateConversion(convSvc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, filename, ok := readUpload(c)
		if !ok {
			return nil
		}

		conv, _, err := convSvc.ConvertAndArchive(c.UserContext(), data, filename)
		if err != nil {
			return writePipelineError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(conv)
	}
}

// ListConversions returns paginated conversion history.
func ListConversions(convSvc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := convSvc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// GetConversion returns a single conversion record by ID.
func GetConversion(convSvc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		conv, err := convSvc.Get(c.UserContext(), id)
		if err != nil {
			return writePipelineError(c, err)
		}
		return c.JSON(conv)
	}
}

// DownloadConversion serves the archived DOCX. It prefers a pre-signed
// redirect so the object store serves the bytes; if presigning fails it
// streams through the app instead.
func DownloadConversion(convSvc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		url, err := convSvc.DownloadURL(c.UserContext(), id, 15*time.Minute)
		if err == nil && url != "" {
			return c.Redirect(url, fiber.StatusFound)
		}
		if errors.Is(err, service.ErrNotFound) {
			return writePipelineError(c, err)
		}

		rc, conv, err := convSvc.Download(c.UserContext(), id)
		if err != nil {
			return writePipelineError(c, err)
		}
		defer rc.Close()

		c.Set(fiber.HeaderContentType, docxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+conv.OutputFilename+`"`)
		return c.SendStream(rc)
	}
}

// DeleteConversion removes an archived conversion.
func DeleteConversion(convSvc service.ConversionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := convSvc.Delete(c.UserContext(), id); err != nil {
			return writePipelineError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
