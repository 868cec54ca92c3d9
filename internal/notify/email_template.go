package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #1e3a5f 0%, #27364b 100%);
      color: #ffffff;
    }

    .report-title {
      font-size: 20px;
      font-weight: 700;
      margin-bottom: 4px;
    }

    .outcome {
      font-size: 15px;
      opacity: 0.9;
      text-transform: capitalize;
    }

    .badge {
      display: inline-block;
      margin-top: 8px;
      padding: 4px 10px;
      font-size: 11px;
      font-weight: 600;
      border-radius: 4px;
      background: #f97316;
      color: #ffffff;
      text-transform: uppercase;
      letter-spacing: 0.05em;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    .meta-grid {
      display: table;
      width: 100%;
      font-size: 14px;
    }

    .meta-row {
      display: table-row;
    }

    .meta-label {
      display: table-cell;
      padding: 6px 16px 6px 0;
      color: #6b7280;
      font-weight: 500;
      white-space: nowrap;
      width: 100px;
    }

    .meta-value {
      display: table-cell;
      padding: 6px 0;
      color: #111827;
    }

    .cta-button {
      display: inline-block;
      margin-top: 12px;
      padding: 10px 20px;
      font-size: 14px;
      font-weight: 600;
	  color: #ffffff !important;
      background: #1e3a5f;
      border-radius: 6px;
      text-decoration: none;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }

    a {
      color: #0b3d91;
      text-decoration: none;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="report-title">{{.Title}}</div>
      <div class="outcome">Run {{.Outcome}}</div>
      {{if .Reason}}
      <span class="badge">{{.Reason}}</span>
      {{end}}
    </div>

    <div class="section">
      <div class="section-title">Run Details</div>
      <div class="meta-grid">
        <div class="meta-row">
          <div class="meta-label">Slug</div>
          <div class="meta-value">{{.Slug}}</div>
        </div>
        <div class="meta-row">
          <div class="meta-label">Finished</div>
          <div class="meta-value">{{.FinishedAt.Format "02 Jan 2006 3:04 PM"}}</div>
        </div>
      </div>
      {{if .PostURL}}
      <a href="{{.PostURL}}" class="cta-button" target="_blank" rel="noopener">
        View Published Post →
      </a>
      {{end}}
    </div>

    <div class="footer">
      Generated by <a href=https://github.com/fintrend/marketpost  target="_blank" rel="noopener">marketpost</a>
    </div>
  </div>
</body>
</html>`
