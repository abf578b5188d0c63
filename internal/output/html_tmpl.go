package output

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Warboard</title>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --hover: #e9ecef; --muted: #6c757d;
  --warn: #fd7e14; --accent: #0d6efd; --line: #20c997;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --hover: #1a1a4e; --muted: #adb5bd;
    --warn: #fd7e14; --accent: #5b9aff; --line: #4caf50;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1.5rem; }
header h1 { font-size: 1.5rem; margin-bottom: .25rem; }
header p { color: var(--muted); font-size: .875rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.charts { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; margin-bottom: 1.5rem; }
@media (max-width: 768px) { .charts { grid-template-columns: 1fr; } }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.chart-box h3 { font-size: .875rem; margin-bottom: .5rem; }
.warnings { border-left: 3px solid var(--warn); padding: .5rem 1rem; margin-bottom: 1.5rem; font-size: .8125rem; color: var(--muted); list-style: none; }
.filters { display: flex; gap: .5rem; margin-bottom: 1rem; align-items: center; }
.filters input { padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); font-size: .875rem; min-width: 260px; }
.filters span { color: var(--muted); font-size: .8125rem; }
.table-wrap { overflow-x: auto; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
thead { position: sticky; top: 0; background: var(--card-bg); }
th, td { padding: .5rem .625rem; text-align: left; border-bottom: 1px solid var(--border); white-space: nowrap; }
th.num, td.num { text-align: right; }
th { cursor: pointer; user-select: none; }
th:hover { color: var(--accent); }
tr:nth-child(even) { background: var(--table-alt); }
tr:hover { background: var(--hover); }
.hidden { display: none; }
.sort-arrow { font-size: .625rem; margin-left: .25rem; }
</style>
</head>
<body>
<header>
  <h1>Warboard</h1>
  <p>{{.Source}} &middot; generated {{.GeneratedAt}}</p>
</header>

<section class="cards" id="summary">
  {{range .Cards}}<div class="card" data-metric="{{.Name}}"><div class="value">{{.Value}}</div><div class="label">{{.Label}}</div></div>
  {{end}}
</section>

<section class="charts" id="charts">
  {{range .Charts}}<div class="chart-box"><h3>{{.Title}}</h3><div id="{{.ID}}" class="chart"></div></div>
  {{end}}
</section>

{{if .Warnings}}<ul class="warnings" id="warnings">
  {{range .Warnings}}<li>{{.}}</li>
  {{end}}
</ul>{{end}}

<section id="filters" class="filters">
  <input type="text" id="search" placeholder="Search players..." value="{{.Query}}" autocomplete="off">
  <span id="row-count">{{.Rows}} of {{.Total}} rows</span>
</section>

<section id="rows" class="table-wrap">
<table>
<thead><tr>
  {{range .Headers}}<th{{if .Numeric}} class="num"{{end}}>{{.Text}}</th>{{end}}
</tr></thead>
<tbody>
{{range .TableRows}}<tr data-idx="{{.Index}}"{{if .Hidden}} class="hidden"{{end}}>{{range $i, $c := .Cells}}<td{{if (index $.Headers $i).Numeric}} class="num"{{end}}>{{$c}}</td>{{end}}</tr>
{{end}}
</tbody>
</table>
</section>

<script>
var model = {{json .Model}};
var initialCharts = {{json .Charts}};

function fmtNum(v, unit) {
  if (unit === "%") return v.toFixed(2) + "%";
  if (Math.floor(v) === v) return v.toLocaleString("en-US");
  return v.toLocaleString("en-US", {maximumFractionDigits: 2});
}

function svgEl(tag, attrs) {
  var el = document.createElementNS("http://www.w3.org/2000/svg", tag);
  for (var k in attrs) el.setAttribute(k, attrs[k]);
  return el;
}

function drawBar(c, spec) {
  var max = Math.max.apply(null, spec.values.concat([0])) || 1;
  var h = spec.labels.length * 28 + 4;
  var svg = svgEl("svg", {width:"100%", viewBox:"0 0 400 "+h});
  for (var i = 0; i < spec.labels.length; i++) {
    var w = Math.max(spec.values[i], 0)/max*220;
    var y = i*28+2;
    svg.appendChild(svgEl("rect", {x:110, y:y, width:Math.max(w,2), height:20, fill:"var(--accent)", rx:3}));
    var txt = svgEl("text", {x:105, y:y+14, "text-anchor":"end", fill:"currentColor", "font-size":"11"});
    txt.textContent = spec.labels[i].length > 18 ? spec.labels[i].slice(0,16)+"..." : spec.labels[i];
    svg.appendChild(txt);
    var val = svgEl("text", {x:115+w, y:y+14, fill:"currentColor", "font-size":"11"});
    val.textContent = fmtNum(spec.values[i], spec.unit);
    svg.appendChild(val);
  }
  c.appendChild(svg);
  return svg;
}

function drawLine(c, spec) {
  var n = spec.values.length;
  var svg = svgEl("svg", {width:"100%", viewBox:"0 0 400 160"});
  var lo = Math.min.apply(null, spec.values), hi = Math.max.apply(null, spec.values);
  if (hi === lo) { hi = lo + 1; }
  var pts = [];
  for (var i = 0; i < n; i++) {
    var x = n === 1 ? 200 : 10 + i*(380/(n-1));
    var y = 150 - (spec.values[i]-lo)/(hi-lo)*140;
    pts.push(x.toFixed(1)+","+y.toFixed(1));
  }
  svg.appendChild(svgEl("polyline", {points:pts.join(" "), fill:"none", stroke:"var(--line)", "stroke-width":2}));
  var sum = spec.values.reduce(function(a,b){return a+b;}, 0);
  var cap = svgEl("text", {x:10, y:14, fill:"currentColor", "font-size":"11"});
  cap.textContent = "min " + fmtNum(Math.min.apply(null, spec.values), spec.unit) +
    "  avg " + fmtNum(sum/n, spec.unit) + "  max " + fmtNum(Math.max.apply(null, spec.values), spec.unit);
  svg.appendChild(cap);
  c.appendChild(svg);
  return svg;
}

// Each chart id maps to one live drawing. A redraw disposes the previous
// drawing before the next one is attached.
var charts = {
  handles: {},
  redraw: function(spec) {
    var old = this.handles[spec.id];
    if (old) { old.dispose(); delete this.handles[spec.id]; }
    var c = document.getElementById(spec.id);
    if (!c) return;
    var el;
    if (!spec.values.length) {
      el = document.createElement("p");
      el.textContent = "No data.";
      c.appendChild(el);
    } else {
      el = spec.kind === "line" ? drawLine(c, spec) : drawBar(c, spec);
    }
    this.handles[spec.id] = { dispose: function(){ el.remove(); } };
  }
};

function matches(row, q) {
  if (!q) return true;
  for (var i = 0; i < row.cells.length; i++) {
    if (row.cells[i].toLowerCase().indexOf(q) !== -1) return true;
  }
  return false;
}

function compute(q) {
  var idx = [];
  for (var i = 0; i < model.rows.length; i++) {
    if (matches(model.rows[i], q)) idx.push(i);
  }
  var figures = [], specs = [];
  model.metrics.forEach(function(m) {
    var total = 0;
    idx.forEach(function(i){ total += model.rows[i].values[m.name] || 0; });
    var value = m.kind === "mean" ? (idx.length ? total/idx.length : 0) : total;
    if (!isFinite(value)) value = value > 0 ? Number.MAX_VALUE : -Number.MAX_VALUE;
    figures.push({name: m.name, value: value, unit: m.unit});
    if (!m.chart) return;
    var pts = idx.map(function(i, pos){ return {label: model.rows[i].name || ("row " + (pos + 1)), value: model.rows[i].values[m.name] || 0, pos: pos}; });
    var spec = {id: "chart-" + m.name, title: m.label, unit: m.unit, kind: m.kind === "mean" ? "line" : "bar"};
    if (spec.kind === "bar") {
      pts.sort(function(a, b){ return b.value - a.value || a.pos - b.pos; });
      pts = pts.slice(0, model.top);
    }
    spec.labels = pts.map(function(p){ return p.label; });
    spec.values = pts.map(function(p){ return p.value; });
    specs.push(spec);
  });
  return {rows: idx, figures: figures, charts: specs};
}

function render(state) {
  var visible = {};
  state.rows.forEach(function(i){ visible[i] = true; });
  document.querySelectorAll("tbody tr").forEach(function(tr) {
    tr.classList.toggle("hidden", !visible[tr.dataset.idx]);
  });
  state.figures.forEach(function(f) {
    var card = document.querySelector('.card[data-metric="' + f.name + '"] .value');
    if (card) card.textContent = fmtNum(f.value, f.unit);
  });
  state.charts.forEach(function(spec){ charts.redraw(spec); });
  document.getElementById("row-count").textContent = state.rows.length + " of " + model.rows.length + " rows";
}

var pending = 0;
function applyQuery() {
  var raw = document.getElementById("search").value;
  var q = raw.trim().toLowerCase();
  if (!model.live) { render(compute(q)); return; }
  var seq = ++pending;
  fetch("api/aggregate?q=" + encodeURIComponent(raw)).then(function(r){ return r.json(); }).then(function(state) {
    if (seq === pending) render(state);
  });
}

initialCharts.forEach(function(spec){ charts.redraw(spec); });
document.getElementById("search").addEventListener("input", applyQuery);

(function(){
  var headers = document.querySelectorAll("th");
  var sortCol = -1, sortAsc = true;
  headers.forEach(function(th, ci) {
    th.addEventListener("click", function() {
      if (sortCol === ci) sortAsc = !sortAsc; else { sortCol = ci; sortAsc = true; }
      var tbody = document.querySelector("tbody");
      var rows = Array.prototype.slice.call(tbody.querySelectorAll("tr"));
      rows.sort(function(a, b) {
        var av = a.children[ci].textContent, bv = b.children[ci].textContent;
        var an = parseFloat(av.replace(/[,%]/g, "")), bn = parseFloat(bv.replace(/[,%]/g, ""));
        if (!isNaN(an) && !isNaN(bn)) return sortAsc ? an-bn : bn-an;
        return sortAsc ? av.localeCompare(bv) : bv.localeCompare(av);
      });
      rows.forEach(function(r){ tbody.appendChild(r); });
      document.querySelectorAll(".sort-arrow").forEach(function(e){ e.remove(); });
      var arrow = document.createElement("span");
      arrow.className = "sort-arrow";
      arrow.textContent = sortAsc ? " ▲" : " ▼";
      th.appendChild(arrow);
    });
  });
})();
</script>
</body>
</html>`

const errorTemplate = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>Warboard</title>
<style>body{font-family:sans-serif;display:flex;flex-direction:column;justify-content:center;align-items:center;height:100vh;color:#6c757d;}
p.error{color:#dc3545;max-width:60ch;text-align:center;}</style>
</head><body><h1>Warboard</h1><p class="error" id="error">Failed to load data: {{.}}</p><p>Check the source link and try again.</p></body></html>`
