package magazine

// Page templates. Rendering is plain token substitution, not html/template:
// the layouts came from the print designers as static HTML and the tokens are
// replaced literally, with missing values becoming the empty string.

// mainTemplate is the masthead page: issue header, "inside the issue" topic
// line, then the news block.
const mainTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>The Daily Press</title>
  <style>
    body {
      margin: 0;
      padding: 0;
      font-family: "Times New Roman", Times, serif;
      background-color: #f9f9f9;
    }
    .header-bg {
      background: linear-gradient(90deg, #d4f3ee 0%, #f7fdfd 100%);
      border-bottom: 2px solid #c9e7e5;
      padding: 6px 0;
    }
    .header-row {
      display: flex;
      justify-content: space-between;
      align-items: flex-end;
      padding: 0 24px;
      font-size: 14px;
      color: #00795b;
      font-style: italic;
    }
    .header-title-row {
      display: flex;
      align-items: center;
      justify-content: center;
    }
    .header-title {
      font-size: 56px;
      font-style: italic;
      font-weight: bold;
      color: #2ca07a;
      letter-spacing: 1.5px;
    }
    .header-logo {
      width: 50px;
      margin: 0 12px;
    }
    .header-issue {
      background: #00795b;
      color: #fff;
      padding: 6px 18px;
      font-size: 15px;
      letter-spacing: 0.5px;
      text-align: center;
    }
    .content { padding: 22px; }
    .news-item { margin-bottom: 20px; }
    .news-title {
      font-size: 22px;
      font-weight: bold;
      color: #1d4e89;
      margin-bottom: 8px;
    }
    .news-row { display: flex; gap: 16px; }
    .news-text {
      font-size: 15px;
      flex: 2;
      text-align: justify;
      line-height: 1.5;
      color: #333;
    }
    .news-image { flex: 1; }
    .news-image img { width: 100%; }
    .news-ref {
      display: block;
      margin-top: 6px;
      font-size: 12px;
      font-style: italic;
      color: #777;
    }
  </style>
</head>
<body>
  <div class="header-bg">
    <div class="header-row">
      <div>
        Issue No: <span>{{ISSUE_NUMBER}}</span><br />
        <span>{{ISSUE_DATE}}</span>
      </div>
    </div>
    <div class="header-title-row">
      <span class="header-title">The Daily</span>
      <img class="header-logo" src="{{LOGO_SRC}}" alt="Logo" />
      <span class="header-title">Press</span>
    </div>
    <div class="header-issue">
      INSIDE THE ISSUE: <span>{{ISSUE_SUMMARY}}</span>
    </div>
  </div>
  <div class="content">
    {{NEWS_ITEMS}}
  </div>
</body>
</html>
`

// furtherTemplate is used for pages after the first when a section title is
// present.
const furtherTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>The Daily Press</title>
  <style>
    body {
      margin: 0;
      padding: 0;
      font-family: "Times New Roman", Times, serif;
      background-color: #fdfdfb;
    }
    .page-number-box {
      position: absolute;
      top: 14px;
      right: 20px;
      background: #00795b;
      color: #fff;
      padding: 4px 12px;
      font-size: 14px;
    }
    .section-title {
      font-size: 30px;
      font-weight: bold;
      color: #00795b;
      border-bottom: 2px solid #c9e7e5;
      margin: 28px 24px 10px;
      padding-bottom: 6px;
    }
    .content { padding: 12px 24px; }
    .news-item { margin-bottom: 22px; }
    .news-title {
      font-size: 20px;
      font-weight: bold;
      color: #1d4e89;
      margin-bottom: 6px;
    }
    .news-row { display: flex; gap: 16px; }
    .news-text {
      font-size: 15px;
      flex: 2;
      text-align: justify;
      line-height: 1.5;
      color: #333;
    }
    .news-image { flex: 1; }
    .news-image img { width: 100%; }
    .news-ref {
      display: block;
      margin-top: 6px;
      font-size: 12px;
      font-style: italic;
      color: #777;
    }
  </style>
</head>
<body>
  <div class="page-number-box">{{PAGE_NUMBER}}</div>
  <div class="section-title">{{SECTION_TITLE}}</div>
  <div class="content">
    {{NEWS_ITEMS}}
  </div>
</body>
</html>
`

// noTitleTemplate is the further-page layout without a section heading.
const noTitleTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>The Daily Press</title>
  <style>
    body {
      margin: 0;
      padding: 0;
      font-family: "Times New Roman", Times, serif;
      background-color: #fdfdfb;
    }
    .page-number-box {
      position: absolute;
      top: 14px;
      right: 20px;
      background: #00795b;
      color: #fff;
      padding: 4px 12px;
      font-size: 14px;
    }
    .content { padding: 40px 24px 12px; }
    .news-item { margin-bottom: 22px; }
    .news-title {
      font-size: 20px;
      font-weight: bold;
      color: #1d4e89;
      margin-bottom: 6px;
    }
    .news-row { display: flex; gap: 16px; }
    .news-text {
      font-size: 15px;
      flex: 2;
      text-align: justify;
      line-height: 1.5;
      color: #333;
    }
    .news-image { flex: 1; }
    .news-image img { width: 100%; }
    .news-ref {
      display: block;
      margin-top: 6px;
      font-size: 12px;
      font-style: italic;
      color: #777;
    }
  </style>
</head>
<body>
  <div class="page-number-box">{{PAGE_NUMBER}}</div>
  <div class="content">
    {{NEWS_ITEMS}}
  </div>
</body>
</html>
`

// newsItemFragment is the per-item block shared by all three page layouts.
const newsItemFragment = `      <div class="news-item">
        <div class="news-title">{{NEWS_TITLE}}</div>
        <div class="news-row">
          <div class="news-image">
            <img src="{{NEWS_IMAGE_SRC}}" alt="{{NEWS_IMAGE_ALT}}" />
          </div>
          <div class="news-text">
            {{NEWS_DESCRIPTION}}
            <span class="news-ref">{{NEWS_REF}}</span>
          </div>
        </div>
      </div>
`
