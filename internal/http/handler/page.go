package handler

import "github.com/gofiber/fiber/v2"

// IndexPage serves the single-page upload UI. It posts the chosen PDF to
// /conversions and renders the status message, text preview, and download
// link from the response.
func IndexPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Type("html").SendString(indexHTML)
	}
}

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>PDF to DOCX Converter</title>
  <style>
    body { font-family: -apple-system, Arial, sans-serif; background: #f0f2f6; margin: 0; }
    .wrap { max-width: 760px; margin: 40px auto; background: #fff; border-radius: 10px;
            padding: 28px; box-shadow: 0 4px 8px rgba(0,0,0,.1); }
    h1 { color: #1f77b4; margin-top: 0; }
    .drop { border: 2px dashed #1f77b4; border-radius: 10px; padding: 24px;
            background: #f9f9f9; text-align: center; }
    button { background: #ff7f0e; color: #fff; border: none; border-radius: 5px;
             padding: 10px 20px; font-weight: bold; cursor: pointer; }
    button:disabled { background: #ccc; cursor: wait; }
    a.download { display: inline-block; background: #28a745; color: #fff; border-radius: 5px;
                 padding: 10px 20px; font-weight: bold; text-decoration: none; }
    pre { background: #f8f9fa; border: 1px solid #dee2e6; border-radius: 5px;
          padding: 12px; white-space: pre-wrap; max-height: 360px; overflow: auto; }
    .status { background: #d1ecf1; color: #0c5460; border: 1px solid #bee5eb;
              border-radius: 5px; padding: 10px; margin: 12px 0; }
    .error { background: #f8d7da; color: #721c24; border: 1px solid #f5c6cb;
             border-radius: 5px; padding: 10px; margin: 12px 0; }
  </style>
</head>
<body>
  <div class="wrap">
    <h1>PDF to DOCX Converter</h1>
    <p>Upload a PDF and get back an editable DOCX with a quick text preview.</p>
    <div class="drop">
      <input type="file" id="file" accept=".pdf" />
      <button id="go">Convert</button>
    </div>
    <div id="out"></div>
  </div>
  <script>
    const btn = document.getElementById('go');
    btn.addEventListener('click', async () => {
      const input = document.getElementById('file');
      const out = document.getElementById('out');
      if (!input.files.length) {
        out.innerHTML = '<div class="error">Choose a PDF first.</div>';
        return;
      }
      const form = new FormData();
      form.append('file', input.files[0]);
      btn.disabled = true;
      out.innerHTML = '<div class="status">Converting…</div>';
      try {
        const resp = await fetch('/conversions', { method: 'POST', body: form });
        const body = await resp.json();
        if (!resp.ok) {
          out.innerHTML = '<div class="error">' + (body.error ? body.error.message : 'conversion failed') + '</div>';
          return;
        }
        let html = '<div class="status">' + body.status_message + '</div>';
        html += '<h3>Text preview</h3>';
        html += body.preview ? '<pre></pre>' : '<p>No text extracted.</p>';
        html += '<p><a class="download" href="/conversions/' + body.id + '/download">Download ' +
                body.output_filename + '</a></p>';
        out.innerHTML = html;
        if (body.preview) out.querySelector('pre').textContent = body.preview;
      } catch (e) {
        out.innerHTML = '<div class="error">' + e + '</div>';
      } finally {
        btn.disabled = false;
      }
    });
  </script>
</body>
</html>`
