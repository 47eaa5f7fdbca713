package inspector

// page is the inspector UI. It renders each snapshot pushed over /ws.
const page = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>viewslot inspector</title>
<style>
body { font-family: monospace; margin: 2em; }
#document { border: 1px solid #ccc; padding: 1em; margin: 1em 0; }
.au-enter, .au-leave { opacity: 0.4; }
#events { color: #555; }
#status.error { color: #c00; }
</style>
</head>
<body>
<h1>viewslot inspector</h1>
<p id="status">waiting for the scenario</p>
<div id="document"></div>
<pre id="html"></pre>
<pre id="events"></pre>
<script>
(function() {
    'use strict';

    var status = document.getElementById('status');

    function render(snap) {
        status.className = '';
        status.textContent = 'step ' + snap.step + ': ' + snap.op +
            (snap.error ? ' (' + snap.error + ')' : '') +
            ' children=[' + (snap.children || []).join(', ') + ']';
        document.getElementById('document').innerHTML = snap.html;
        document.getElementById('html').textContent = snap.html;
        document.getElementById('events').textContent = (snap.events || []).join('\n');
    }

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/ws');

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'snapshot':
                    render(msg.snapshot);
                    break;
                case 'done':
                    status.textContent += ' (done)';
                    break;
                case 'error':
                    status.className = 'error';
                    status.textContent = msg.error;
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(connect, 1000);
        };
    }

    connect();
})();
</script>
</body>
</html>
`
